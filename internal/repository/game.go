package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const gamesKey = "kxo:games"

// ArchivedGame is one completed game as persisted by an archive backend.
type ArchivedGame struct {
	Moves      []int     `json:"moves"`
	Winner     string    `json:"winner"`
	FinishedAt time.Time `json:"finished_at"`
}

// GameArchive persists completed games after a session and serves them back
// newest first.
type GameArchive interface {
	Save(ctx context.Context, game *ArchivedGame) error
	Recent(ctx context.Context, limit int) ([]*ArchivedGame, error)
}

type redisArchive struct {
	client *redis.Client
}

// NewGameArchive returns a Redis-backed archive. Games live in a single list
// keyed by insertion order, newest at the head.
func NewGameArchive(client *redis.Client) GameArchive {
	return &redisArchive{
		client: client,
	}
}

func (that *redisArchive) Save(ctx context.Context, game *ArchivedGame) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.LPush(ctx, gamesKey, gameJSON).Err(); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *redisArchive) Recent(ctx context.Context, limit int) ([]*ArchivedGame, error) {
	entries, err := that.client.LRange(ctx, gamesKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*ArchivedGame, 0, len(entries))
	for _, entry := range entries {
		var game ArchivedGame
		if err = json.Unmarshal([]byte(entry), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		games = append(games, &game)
	}

	return games, nil
}
