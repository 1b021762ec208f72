package kernel

import (
	"fmt"
	"io"
	"os"

	"github.com/rocketscienceinc/kxo-monitor/internal/apperror"
)

// AttrSize is the fixed width of the sysfs attribute record.
const AttrSize = 6

const (
	displayOffset = 0
	endOffset     = 4

	flagOff = byte('0')
	flagOn  = byte('1')
)

// AttrFile is the sysfs control record shared with the kxo module: byte 0 is
// the display-enabled flag, byte 4 the termination flag, the rest reserved.
// Every mutation opens the file, reads the full record, rewrites it, and
// closes again; no handle outlives a single call.
type AttrFile struct {
	path string
}

// NewAttrFile returns an accessor for the attribute at path.
func NewAttrFile(path string) *AttrFile {
	return &AttrFile{path: path}
}

// ToggleDisplay flips the display flag and reports the new state.
func (that *AttrFile) ToggleDisplay() (bool, error) {
	var enabled bool

	err := that.mutate(func(record []byte) {
		if record[displayOffset] == flagOff {
			record[displayOffset] = flagOn
		} else {
			record[displayOffset] = flagOff
		}
		enabled = record[displayOffset] == flagOn
	})
	if err != nil {
		return false, err
	}

	return enabled, nil
}

// RequestEnd forces the termination flag on. The module reacts by finishing
// the stream, which is what finally unblocks the session loop.
func (that *AttrFile) RequestEnd() error {
	return that.mutate(func(record []byte) {
		record[endOffset] = flagOn
	})
}

func (that *AttrFile) mutate(update func(record []byte)) error {
	file, err := os.OpenFile(that.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrAttrUnavailable, err)
	}
	defer file.Close()

	record := make([]byte, AttrSize)
	if _, err = io.ReadFull(file, record); err != nil {
		return fmt.Errorf("read attribute: %w", err)
	}

	update(record)

	if _, err = file.WriteAt(record, 0); err != nil {
		return fmt.Errorf("write attribute: %w", err)
	}

	return nil
}
