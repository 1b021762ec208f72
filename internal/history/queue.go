// Package history keeps the move sequences of completed games for the final
// session report.
package history

import (
	"container/list"
	"errors"
)

var ErrNoMoves = errors.New("game has no moves to record")

// GameRecord is one completed game. It is immutable once queued.
type GameRecord struct {
	moves  []int
	winner byte
}

// Moves returns the game's cell indices in the order they were played.
// Callers must not modify the returned slice.
func (that *GameRecord) Moves() []int {
	return that.moves
}

// Winner returns the winning player's mark.
func (that *GameRecord) Winner() byte {
	return that.winner
}

// Queue is an ordered collection of completed games, newest first. It is not
// safe for concurrent use; the session pushes while the loop runs and the
// report traverses only after the loop has exited.
type Queue struct {
	records *list.List
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{records: list.New()}
}

// PushFront copies moves into a new record and inserts it at the front of the
// queue. The caller's slice may be reused afterward. A game with no moves is
// rejected without touching the queue.
func (that *Queue) PushFront(moves []int, winner byte) error {
	if len(moves) == 0 {
		return ErrNoMoves
	}

	if that.records == nil {
		that.records = list.New()
	}

	copied := make([]int, len(moves))
	copy(copied, moves)

	that.records.PushFront(&GameRecord{moves: copied, winner: winner})

	return nil
}

// Len returns the number of queued games.
func (that *Queue) Len() int {
	if that.records == nil {
		return 0
	}
	return that.records.Len()
}

// ForEach visits every record front to back, most recent game first. The
// traversal stops early when fn returns false.
func (that *Queue) ForEach(fn func(*GameRecord) bool) {
	if that.records == nil {
		return
	}

	for elem := that.records.Front(); elem != nil; elem = elem.Next() {
		if !fn(elem.Value.(*GameRecord)) {
			return
		}
	}
}

// Destroy releases every record and leaves the queue empty. Each record is
// removed exactly once; a destroyed queue behaves like a fresh empty one, so
// a stray later call is a harmless no-op rather than a crash.
func (that *Queue) Destroy() {
	if that.records == nil {
		return
	}

	for elem := that.records.Front(); elem != nil; elem = that.records.Front() {
		that.records.Remove(elem)
	}
}
