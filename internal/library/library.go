// Package library stores practice texts in SQLite.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typetest/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a text id does not exist.
var ErrNotFound = errors.New("text not found")

// Library wraps SQLite access for stored texts.
type Library struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Library, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	lib := &Library{db: db, now: time.Now}
	if err := lib.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return lib, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

func (l *Library) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS texts (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_texts_body ON texts(body);`,
	}
	for _, stmt := range stmts {
		if _, err := l.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Add stores a text and returns its id. Adding an existing body returns the existing id.
func (l *Library) Add(ctx context.Context, title, body string) (int64, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, fmt.Errorf("text body is empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle(body)
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO texts (title, body, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(body) DO NOTHING`,
		title,
		body,
		l.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := l.db.QueryRowContext(ctx, `SELECT id FROM texts WHERE body = ?`, body).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes a text by id.
func (l *Library) Delete(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM texts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("text %d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns all texts ordered by id.
func (l *Library) List(ctx context.Context) ([]model.Text, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, title, body, created_at FROM texts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Text
	for rows.Next() {
		var text model.Text
		var createdAt string
		if err := rows.Scan(&text.ID, &text.Title, &text.Body, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		text.CreatedAt = parsed
		result = append(result, text)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Bodies returns the body of every stored text.
func (l *Library) Bodies(ctx context.Context) ([]string, error) {
	texts, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	bodies := make([]string, len(texts))
	for i, text := range texts {
		bodies[i] = text.Body
	}
	return bodies, nil
}

func defaultTitle(body string) string {
	const maxTitle = 32
	title := strings.Join(strings.Fields(body), " ")
	runes := []rune(title)
	if len(runes) <= maxTitle {
		return title
	}
	return string(runes[:maxTitle-3]) + "..."
}
