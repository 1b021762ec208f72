package kernel

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rocketscienceinc/kxo-monitor/internal/protocol"
)

// Device is the read side of the kxo character device. Each successful read
// yields one wire record; the session multiplexes reads via poll, so the
// device is only read when the kernel has a record ready.
type Device struct {
	file *os.File
}

// OpenDevice opens the character device read-only.
func OpenDevice(path string) (*Device, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}

	return &Device{file: file}, nil
}

// NewDevice wraps an already-open file, for sessions driven by a pipe.
func NewDevice(file *os.File) *Device {
	return &Device{file: file}
}

// Fd returns the device's descriptor for the readiness wait.
func (that *Device) Fd() int {
	return int(that.file.Fd())
}

// ReadRecord reads one record as a single snapshot. The whole record is
// fetched in one read and decoded from that buffer, so the status and move
// fields always belong to the same tick even though the kernel producer keeps
// mutating its side. A short read or EOF means no data this tick.
func (that *Device) ReadRecord() (protocol.WireRecord, bool, error) {
	var buf [protocol.RecordSize]byte

	n, err := that.file.Read(buf[:])
	if errors.Is(err, io.EOF) || (err == nil && n < protocol.RecordSize) {
		return protocol.WireRecord{}, false, nil
	}
	if err != nil {
		return protocol.WireRecord{}, false, fmt.Errorf("read device: %w", err)
	}

	return protocol.Decode(buf), true, nil
}

// Close releases the device descriptor.
func (that *Device) Close() error {
	return that.file.Close()
}
