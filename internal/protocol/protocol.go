// Package protocol implements the bit-packed wire format the kxo kernel
// module writes to its character device. Each read from the device yields one
// fixed-size record: a status byte whose high bit marks the end of a game and
// whose low seven bits carry a player mark, followed by the cell index of the
// move (or MoveNone when no cell was written this tick).
package protocol

import "encoding/binary"

// RecordSize is the on-wire size of one record: the status byte at offset 0,
// three bytes of struct padding, and a little-endian int32 move at offset 4.
const RecordSize = 8

// MoveNone means the record carries no new move.
const MoveNone int32 = -1

const (
	endBit   = 0x80
	markMask = 0x7F
)

// WireRecord is one decoded board update tick.
type WireRecord struct {
	Status byte
	Move   int32
}

// EncodeMark replaces the mark bits of status with mark, preserving the end bit.
func EncodeMark(status, mark byte) byte {
	return status&endBit | mark&markMask
}

// SetEnd sets the end-of-game bit, preserving the mark bits.
func SetEnd(status byte) byte {
	return status | endBit
}

// ClearEnd clears the end-of-game bit, preserving the mark bits.
func ClearEnd(status byte) byte {
	return status & markMask
}

// Mark extracts the player mark from a status byte.
func Mark(status byte) byte {
	return status & markMask
}

// End reports whether the end-of-game bit is set.
func End(status byte) bool {
	return status&endBit != 0
}

// Decode extracts a record from a snapshot buffer. The buffer must be filled
// by a single read so the two fields come from the same tick; fields are never
// read back from the device after that.
func Decode(buf [RecordSize]byte) WireRecord {
	return WireRecord{
		Status: buf[0],
		Move:   int32(binary.LittleEndian.Uint32(buf[4:])),
	}
}

// Encode renders the record in its on-wire layout.
func (that WireRecord) Encode() [RecordSize]byte {
	var buf [RecordSize]byte
	buf[0] = that.Status
	binary.LittleEndian.PutUint32(buf[4:], uint32(that.Move))
	return buf
}
