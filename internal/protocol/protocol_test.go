package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMark(t *testing.T) {
	t.Run("Round-trips every mark against every status byte", func(t *testing.T) {
		for status := 0; status <= 0xFF; status++ {
			for mark := 0; mark <= 0x7F; mark++ {
				// When: a mark is encoded into an existing status byte
				encoded := EncodeMark(byte(status), byte(mark))

				// Then: the mark reads back unchanged
				require.Equal(t, byte(mark), Mark(encoded))

				// Then: the end bit of the original status byte is preserved
				require.Equal(t, End(byte(status)), End(encoded))
			}
		}
	})

	t.Run("Drops the high bit of an out-of-range mark", func(t *testing.T) {
		// When: a mark with the high bit set is encoded
		encoded := EncodeMark(0, 0xFF)

		// Then: only the low seven bits survive
		assert.Equal(t, byte(0x7F), Mark(encoded))
		assert.False(t, End(encoded))
	})
}

func TestEndBit(t *testing.T) {
	for status := 0; status <= 0xFF; status++ {
		s := byte(status)

		// When: the end bit is set
		ended := SetEnd(s)

		// Then: it reads as set and the mark bits are untouched
		require.True(t, End(ended))
		require.Equal(t, Mark(s), Mark(ended))

		// When: the end bit is cleared again
		cleared := ClearEnd(ended)

		// Then: it reads as clear and the original mark bits are restored
		require.False(t, End(cleared))
		require.Equal(t, Mark(s), Mark(cleared))
	}
}

func TestDecode(t *testing.T) {
	t.Run("Extracts both fields from one snapshot buffer", func(t *testing.T) {
		// Given: an on-wire record with mark 'X', end bit set, move 11
		buf := [RecordSize]byte{SetEnd('X'), 0, 0, 0, 11, 0, 0, 0}

		// When: the record is decoded
		rec := Decode(buf)

		// Then: the fields match the wire layout
		assert.Equal(t, byte('X'), Mark(rec.Status))
		assert.True(t, End(rec.Status))
		assert.Equal(t, int32(11), rec.Move)
	})

	t.Run("Decodes the no-move sentinel", func(t *testing.T) {
		// Given: a heartbeat record with move -1
		buf := [RecordSize]byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}

		// When: the record is decoded
		rec := Decode(buf)

		// Then: the move is the sentinel and no end is flagged
		assert.Equal(t, MoveNone, rec.Move)
		assert.False(t, End(rec.Status))
	})

	t.Run("Encode is the inverse of Decode", func(t *testing.T) {
		// Given: a decoded record
		rec := WireRecord{Status: EncodeMark(0, 'O'), Move: 5}

		// When: it is re-encoded and decoded again
		decoded := Decode(rec.Encode())

		// Then: the record survives unchanged
		assert.Equal(t, rec, decoded)
	})
}
