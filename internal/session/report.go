package session

import (
	"fmt"
	"io"

	"github.com/rocketscienceinc/kxo-monitor/internal/board"
	"github.com/rocketscienceinc/kxo-monitor/internal/history"
)

// WriteReport prints every recorded game, most recent first: the move
// sequence in column-letter/row-number form, then the winner's mark.
func WriteReport(w io.Writer, queue *history.Queue) {
	queue.ForEach(func(rec *history.GameRecord) bool {
		fmt.Fprintf(w, "Moves: %s\n", board.FormatMoves(rec.Moves()))
		fmt.Fprintf(w, "%q Win!\n", string(rec.Winner()))
		return true
	})
}
