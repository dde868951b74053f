// Package history keeps a local log of the user's own uploads. It
// never shadows server-side quote state; it only remembers what was
// submitted from this machine and what came back.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Entry is one recorded upload.
type Entry struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	QuoteID    string    `json:"quote_id"`
	FinalPrice float64   `json:"final_price"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Filter narrows List results.
type Filter struct {
	Status string
	Limit  int
}

// Store is the sqlite-backed upload log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path and
// configures WAL mode.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "history: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "history: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS uploads (
	id          TEXT PRIMARY KEY,
	file_name   TEXT NOT NULL,
	quote_id    TEXT NOT NULL,
	final_price REAL NOT NULL,
	currency    TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_uploads_quote_id ON uploads(quote_id);
CREATE INDEX IF NOT EXISTS idx_uploads_status ON uploads(status);
`

// Migrate creates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "history: migrate")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one upload outcome.
func (s *Store) Record(ctx context.Context, e Entry) (*Entry, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, file_name, quote_id, final_price, currency, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.FileName, e.QuoteID, e.FinalPrice, e.Currency, e.Status, e.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "history: insert upload")
	}
	return &e, nil
}

// List returns recorded uploads, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT id, file_name, quote_id, final_price, currency, status, created_at
	          FROM uploads WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "history: list uploads")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.FileName, &e.QuoteID, &e.FinalPrice, &e.Currency, &e.Status, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "history: scan upload")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "history: list uploads iterate")
}
