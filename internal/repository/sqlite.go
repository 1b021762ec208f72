package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type sqliteArchive struct {
	db *sql.DB
}

// NewSQLiteGameArchive returns an archive backed by the games table. The
// schema must already exist (storage.InitSQLite).
func NewSQLiteGameArchive(db *sql.DB) GameArchive {
	return &sqliteArchive{
		db: db,
	}
}

func (that *sqliteArchive) Save(ctx context.Context, game *ArchivedGame) error {
	movesJSON, err := json.Marshal(game.Moves)
	if err != nil {
		return fmt.Errorf("could not marshal moves: %w", err)
	}

	query := `INSERT INTO games (moves, winner, finished_at) VALUES (?, ?, ?)`

	finishedAt := game.FinishedAt.UTC().Format(time.RFC3339Nano)
	if _, err = that.db.ExecContext(ctx, query, string(movesJSON), game.Winner, finishedAt); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *sqliteArchive) Recent(ctx context.Context, limit int) ([]*ArchivedGame, error) {
	query := `SELECT moves, winner, finished_at FROM games ORDER BY id DESC LIMIT ?`

	rows, err := that.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*ArchivedGame
	for rows.Next() {
		var (
			game       ArchivedGame
			movesJSON  string
			finishedAt string
		)

		if err = rows.Scan(&movesJSON, &game.Winner, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}

		if err = json.Unmarshal([]byte(movesJSON), &game.Moves); err != nil {
			return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
		}

		if game.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}

		games = append(games, &game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}
