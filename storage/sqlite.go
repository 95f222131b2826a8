package storage

import (
	"database/sql"
	"fmt"
	"sync"

	"ghost_maze_server/logic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

var (
	db   *sql.DB
	once sync.Once
)

// InitDB opens the database and creates the schema. Safe to call more than
// once; only the first call does work.
func InitDB(path string) error {
	var initErr error
	once.Do(func() {
		var err error
		db, err = sql.Open("sqlite3", path)
		if err != nil {
			initErr = fmt.Errorf("open sqlite db: %w", err)
			return
		}

		schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			won INTEGER NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			swaps INTEGER NOT NULL,
			converges INTEGER NOT NULL,
			finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS meta_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`
		if _, err := db.Exec(schema); err != nil {
			initErr = fmt.Errorf("create schema: %w", err)
			return
		}
		log.Info().Str("path", path).Msg("sqlite persistence initialized")
	})
	return initErr
}

// SaveRound records a finished round.
func SaveRound(res logic.RoundResult) {
	if db == nil {
		return
	}
	won := 0
	if res.Won {
		won = 1
	}
	_, err := db.Exec(
		`INSERT INTO rounds (won, score, ticks, swaps, converges) VALUES (?, ?, ?, ?, ?)`,
		won, res.Score, res.Ticks, res.Swaps, res.Converges,
	)
	if err != nil {
		log.Error().Err(err).Msg("save round failed")
	}
}

// SaveMetaEvent records a role-swap or converge activation.
func SaveMetaEvent(tick uint64, kind string) {
	if db == nil {
		return
	}
	if _, err := db.Exec(`INSERT INTO meta_events (tick, kind) VALUES (?, ?)`, tick, kind); err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("save meta event failed")
	}
}

// BestScore returns the highest recorded round score, 0 when none exists.
func BestScore() (int, error) {
	if db == nil {
		return 0, nil
	}
	var best sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(score) FROM rounds`).Scan(&best); err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}
