// Package session runs the monitor's event loop: one blocking readiness wait
// over the keyboard and the kxo device, with all decode, board, display, and
// recording work done synchronously after each wake-up.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/rocketscienceinc/kxo-monitor/internal/board"
	"github.com/rocketscienceinc/kxo-monitor/internal/history"
	"github.com/rocketscienceinc/kxo-monitor/internal/protocol"
)

const (
	keyToggleDisplay = 0x10 // Ctrl-P
	keyQuit          = 0x11 // Ctrl-Q

	clearScreen = "\033[H\033[J"
)

type deviceReader interface {
	Fd() int
	ReadRecord() (protocol.WireRecord, bool, error)
}

type controlChannel interface {
	ToggleDisplay() (bool, error)
	RequestEnd() error
}

// Session owns all mutable state of one monitoring run: the board snapshot,
// the in-progress move log, and the two control flags. Nothing here is shared
// between goroutines; the loop is the only execution context.
type Session struct {
	logger  *slog.Logger
	stdinFd int
	device  deviceReader
	control controlChannel
	queue   *history.Queue
	out     io.Writer

	boardState     board.Snapshot
	moveLog        []int
	displayEnabled bool
	endRequested   bool
}

// New returns a session with the display enabled and an empty board.
func New(logger *slog.Logger, stdinFd int, device deviceReader, control controlChannel, queue *history.Queue, out io.Writer) *Session {
	return &Session{
		logger:  logger.With("component", "session"),
		stdinFd: stdinFd,
		device:  device,
		control: control,
		queue:   queue,
		out:     out,

		boardState:     board.NewSnapshot(),
		moveLog:        make([]int, 0, board.Cells),
		displayEnabled: true,
	}
}

// Run blocks until termination is requested via Ctrl-Q or the device hangs
// up. The only suspension point is the poll; a poll failure is fatal because
// no retry policy exists for a broken readiness facility.
func (that *Session) Run() error {
	fds := []unix.PollFd{
		{Fd: int32(that.stdinFd), Events: unix.POLLIN},
		{Fd: int32(that.device.Fd()), Events: unix.POLLIN},
	}

	for !that.endRequested {
		fds[0].Revents = 0
		fds[1].Revents = 0

		if _, err := unix.Poll(fds, -1); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("poll: %w", err)
		}

		switch {
		case fds[0].Revents&unix.POLLIN != 0:
			that.handleKeyboard()
		case fds[1].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0:
			consumed, err := that.handleDevice()
			if err != nil {
				that.logger.Warn("device read failed", "error", err)
			}
			// No reconnect policy exists for a closed device.
			if !consumed && fds[1].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
				that.logger.Info("device closed, ending session")
				return nil
			}
		}
	}

	return nil
}

// handleKeyboard consumes one byte of control input. Unrecognized bytes are
// ignored; reads never block because stdin is non-blocking for the session.
func (that *Session) handleKeyboard() {
	var buf [1]byte

	n, err := unix.Read(that.stdinFd, buf[:])
	if err != nil || n != 1 {
		return
	}

	switch buf[0] {
	case keyToggleDisplay:
		enabled, err := that.control.ToggleDisplay()
		if err != nil {
			that.logger.Debug("display toggle skipped", "error", err)
			return
		}
		that.displayEnabled = enabled
		if !enabled {
			that.logger.Info("board display paused")
		}
	case keyQuit:
		if err := that.control.RequestEnd(); err != nil {
			that.logger.Debug("end request not delivered to the module", "error", err)
		}
		that.displayEnabled = false
		that.endRequested = true
		that.logger.Info("stopping the kernel tic-tac-toe session")
	}
}

// handleDevice consumes one wire record and applies it to the session state.
// The first return reports whether a record was actually read; an empty read
// against a hung-up device is how the loop learns the stream is over.
func (that *Session) handleDevice() (bool, error) {
	rec, ok, err := that.device.ReadRecord()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	// A sentinel move with the end flag clear is a heartbeat tick: no board
	// change and no repaint.
	if rec.Move == protocol.MoveNone && !protocol.End(rec.Status) {
		return true, nil
	}

	if rec.Move != protocol.MoveNone {
		if err = that.boardState.Set(int(rec.Move), protocol.Mark(rec.Status)); err != nil {
			that.logger.Warn("dropping move outside the board", "move", rec.Move)
		} else {
			that.moveLog = append(that.moveLog, int(rec.Move))
		}
	}

	if that.displayEnabled {
		fmt.Fprint(that.out, clearScreen)
		fmt.Fprint(that.out, that.boardState.Render())
	}

	if protocol.End(rec.Status) {
		that.finishGame(protocol.Mark(rec.Status))
	}

	return true, nil
}

// finishGame moves the accumulated move log into the history queue and resets
// the board for the next game. A failed insertion costs one game's history
// and nothing else.
func (that *Session) finishGame(winner byte) {
	if len(that.moveLog) > 0 {
		if err := that.queue.PushFront(that.moveLog, winner); err != nil {
			that.logger.Error("failed to record game history", "error", err)
		}
	}

	that.moveLog = that.moveLog[:0]
	that.boardState.Reset()
}
