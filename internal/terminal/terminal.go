// Package terminal switches the controlling terminal into the unbuffered,
// non-echoing mode the session loop needs and guarantees the original mode
// comes back on every exit path.
package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// State remembers the terminal attributes to restore. Restore is idempotent
// so the deferred path and the signal path can both call it.
type State struct {
	fd       int
	saved    unix.Termios
	restored bool
}

// MakeRaw disables echo, canonical input, and flow control on fd and switches
// it to non-blocking reads. Output processing stays on: the board repaint
// relies on ordinary newline handling, so the full raw mode of term.MakeRaw
// would mangle it.
func MakeRaw(fd int) (*State, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("fd %d is not a terminal", fd)
	}

	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}

	that := &State{fd: fd, saved: *tio}

	tio.Iflag &^= unix.IXON
	tio.Lflag &^= unix.ECHO | unix.ICANON
	if err = unix.IoctlSetTermios(fd, unix.TCSETSF, tio); err != nil {
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.IoctlSetTermios(fd, unix.TCSETSF, &that.saved)
		return nil, fmt.Errorf("set non-blocking input: %w", err)
	}

	return that, nil
}

// Restore puts the terminal back into its saved mode and re-enables blocking
// reads. Safe to call more than once.
func (that *State) Restore() {
	if that == nil || that.restored {
		return
	}
	that.restored = true

	_ = unix.SetNonblock(that.fd, false)
	_ = unix.IoctlSetTermios(that.fd, unix.TCSETSF, &that.saved)
}
