// Package board holds the monitor's view of the kernel game board and the
// text rendering of it.
package board

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/kxo-monitor/internal/apperror"
)

const (
	// Size is the board's edge length; the kxo module plays on a 4x4 grid.
	Size  = 4
	Cells = Size * Size

	Empty = byte(' ')
	MarkX = byte('X')
	MarkO = byte('O')
)

// Snapshot mirrors the kernel's board, one mark byte per cell. It is mutated
// in place as wire records arrive and reset when a game ends.
type Snapshot [Cells]byte

// NewSnapshot returns an all-empty board.
func NewSnapshot() Snapshot {
	var that Snapshot
	that.Reset()
	return that
}

// Set writes mark into the given cell.
func (that *Snapshot) Set(cell int, mark byte) error {
	if cell < 0 || cell >= Cells {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	that[cell] = mark

	return nil
}

// Reset clears every cell.
func (that *Snapshot) Reset() {
	for i := range that {
		that[i] = Empty
	}
}

// Render draws the board as text: cells separated by pipes, a dash rule after
// every row, two blank lines on top to offset from the screen-clear sequence.
func (that *Snapshot) Render() string {
	var b strings.Builder
	b.WriteString("\n\n")

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if col > 0 {
				b.WriteByte('|')
			}
			b.WriteByte(that[row*Size+col])
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", Size*2-1))
		b.WriteByte('\n')
	}

	return b.String()
}

// CellName formats a cell index as a column letter and one-based row number,
// "A1" through "D4".
func CellName(cell int) string {
	return fmt.Sprintf("%c%d", 'A'+cell%Size, 1+cell/Size)
}

// FormatMoves joins a move sequence into the report form "A1 -> B2 -> C3".
func FormatMoves(moves []int) string {
	names := make([]string, len(moves))
	for i, move := range moves {
		names[i] = CellName(move)
	}
	return strings.Join(names, " -> ")
}
