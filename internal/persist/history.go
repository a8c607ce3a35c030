package persist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one finished game.
type Run struct {
	Player      string
	Score       int
	Escaped     int
	WeaponLevel int
	Ticks       int
	FinishedAt  time.Time
}

// History records finished runs in SQLite and serves the leaderboard.
// It is safe for concurrent use.
type History struct {
	conn *sql.DB
}

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(ctx context.Context, path string) (*History, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL lets SSH sessions read the leaderboard while another run is written.
	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	h := &History{conn: conn}
	if err := h.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.conn.Close()
}

func (h *History) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL,
		escaped INTEGER NOT NULL DEFAULT 0,
		weapon_level INTEGER NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		finished_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	`
	if _, err := h.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

// Record stores a finished run. A zero FinishedAt is set to now.
func (h *History) Record(ctx context.Context, r Run) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	_, err := h.conn.ExecContext(ctx,
		"INSERT INTO runs (player, score, escaped, weapon_level, ticks, finished_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.Player, r.Score, r.Escaped, r.WeaponLevel, r.Ticks, r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Top returns up to limit runs, highest score first. Ties go to the earlier run.
func (h *History) Top(ctx context.Context, limit int) ([]Run, error) {
	rows, err := h.conn.QueryContext(ctx,
		`SELECT player, score, escaped, weapon_level, ticks, finished_at
		FROM runs
		ORDER BY score DESC, finished_at ASC, id ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		var r Run
		var finished int64
		if err := rows.Scan(&r.Player, &r.Score, &r.Escaped, &r.WeaponLevel, &r.Ticks, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt = time.UnixMilli(finished)
		result = append(result, r)
	}
	return result, rows.Err()
}
