package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kxo-monitor/internal/apperror"
)

func TestSnapshot_Set(t *testing.T) {
	t.Run("Writes a mark into a cell", func(t *testing.T) {
		// Given: an empty board
		snapshot := NewSnapshot()

		// When: a mark is written
		err := snapshot.Set(5, MarkX)

		// Then: the cell holds the mark and the rest stay empty
		require.NoError(t, err)
		assert.Equal(t, MarkX, snapshot[5])
		assert.Equal(t, Empty, snapshot[0])
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		// Given: an empty board
		snapshot := NewSnapshot()

		// When: a mark is written past the board edge
		err := snapshot.Set(Cells, MarkO)

		// Then: ErrInvalidCell is returned and the board is untouched
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, NewSnapshot(), snapshot)
	})
}

func TestSnapshot_Reset(t *testing.T) {
	// Given: a board with a few marks
	snapshot := NewSnapshot()
	require.NoError(t, snapshot.Set(0, MarkX))
	require.NoError(t, snapshot.Set(15, MarkO))

	// When: the board is reset
	snapshot.Reset()

	// Then: every cell is empty again
	assert.Equal(t, NewSnapshot(), snapshot)
}

func TestSnapshot_Render(t *testing.T) {
	// Given: a board with X in the first cell and O in the last
	snapshot := NewSnapshot()
	require.NoError(t, snapshot.Set(0, MarkX))
	require.NoError(t, snapshot.Set(15, MarkO))

	// When: the board is rendered
	rendered := snapshot.Render()

	// Then: the grid matches the fixed layout
	expected := "\n\n" +
		"X| | | \n" +
		"-------\n" +
		" | | | \n" +
		"-------\n" +
		" | | | \n" +
		"-------\n" +
		" | | |O\n" +
		"-------\n"
	assert.Equal(t, expected, rendered)
}

func TestCellName(t *testing.T) {
	tests := []struct {
		cell int
		want string
	}{
		{cell: 0, want: "A1"},
		{cell: 3, want: "D1"},
		{cell: 4, want: "A2"},
		{cell: 15, want: "D4"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, CellName(tc.cell))
	}
}

func TestFormatMoves(t *testing.T) {
	t.Run("Joins moves with arrows", func(t *testing.T) {
		assert.Equal(t, "A1 -> B2 -> C1", FormatMoves([]int{0, 5, 2}))
	})

	t.Run("Single move has no arrow", func(t *testing.T) {
		assert.Equal(t, "A1", FormatMoves([]int{0}))
	})

	t.Run("Empty sequence renders empty", func(t *testing.T) {
		assert.Empty(t, FormatMoves(nil))
	})
}
