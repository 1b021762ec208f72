package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/kxo-monitor/testing/suite"
)

func TestGameArchive_Save(t *testing.T) {
	ctx, st := suite.New(t)

	archive := NewGameArchive(st.Storage)

	// Given: a completed game
	game := &ArchivedGame{
		Moves:      []int{0, 4, 1, 5, 2},
		Winner:     "X",
		FinishedAt: time.Now().UTC().Truncate(time.Second),
	}

	// When: the game is archived
	err := archive.Save(ctx, game)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameArchive_Recent(t *testing.T) {
	t.Run("Recent_NewestFirst", func(t *testing.T) {
		ctx, st := suite.New(t)

		archive := NewGameArchive(st.Storage)

		// Given: two archived games saved in order
		first := &ArchivedGame{Moves: []int{0, 1}, Winner: "X", FinishedAt: time.Now().UTC().Truncate(time.Second)}
		second := &ArchivedGame{Moves: []int{2, 3}, Winner: "O", FinishedAt: time.Now().UTC().Truncate(time.Second)}
		require.NoError(t, archive.Save(ctx, first))
		require.NoError(t, archive.Save(ctx, second))

		// When: the recent games are listed
		games, err := archive.Recent(ctx, 10)

		// Then: both come back, the second game first
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, second.Moves, games[0].Moves)
		assert.Equal(t, second.Winner, games[0].Winner)
		assert.Equal(t, first.Moves, games[1].Moves)
		assert.Equal(t, first.Winner, games[1].Winner)
	})

	t.Run("Recent_HonorsLimit", func(t *testing.T) {
		ctx, st := suite.New(t)

		archive := NewGameArchive(st.Storage)

		// Given: three archived games
		for i := 0; i < 3; i++ {
			game := &ArchivedGame{Moves: []int{i}, Winner: "X", FinishedAt: time.Now().UTC()}
			require.NoError(t, archive.Save(ctx, game))
		}

		// When: only the two most recent are requested
		games, err := archive.Recent(ctx, 2)

		// Then: the list is capped at two
		require.NoError(t, err)
		assert.Len(t, games, 2)
	})

	t.Run("Recent_EmptyArchive", func(t *testing.T) {
		ctx, st := suite.New(t)

		archive := NewGameArchive(st.Storage)

		// When: the archive has never been written
		games, err := archive.Recent(ctx, 10)

		// Then: an empty list, not an error
		require.NoError(t, err)
		assert.Empty(t, games)
	})
}
