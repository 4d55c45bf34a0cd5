package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"homework_bot/internal/model"
	"homework_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadState returns the saved loop state, or the zero state if none was saved.
func (s *SQLite) LoadState(ctx context.Context) (model.LoopState, error) {
	var st model.LoopState
	var updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT cursor, last_sent_message, last_error_message, updated_at
		 FROM poll_state WHERE id = 1`,
	).Scan(&st.Cursor, &st.LastSentMessage, &st.LastErrorMessage, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LoopState{}, nil
	}
	if err != nil {
		return model.LoopState{}, fmt.Errorf("load state: %w", err)
	}
	st.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return st, nil
}

// SaveState stores the loop state, replacing any previous one.
func (s *SQLite) SaveState(ctx context.Context, state model.LoopState) error {
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO poll_state (id, cursor, last_sent_message, last_error_message, updated_at)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   cursor = excluded.cursor,
		   last_sent_message = excluded.last_sent_message,
		   last_error_message = excluded.last_error_message,
		   updated_at = excluded.updated_at`,
		state.Cursor, state.LastSentMessage, state.LastErrorMessage, now,
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// RecordNotification appends a delivered message to the journal and
// populates its ID and SentAt.
func (s *SQLite) RecordNotification(ctx context.Context, n *model.Notification) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (kind, text, sent_at) VALUES (?, ?, ?)`,
		string(n.Kind), n.Text, now,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	n.ID = id
	n.SentAt, _ = time.Parse(timeLayout, now)
	return nil
}

// ListNotifications returns up to limit journal entries, newest first.
func (s *SQLite) ListNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, text, sent_at FROM notifications ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		var kind, sent string
		if err := rows.Scan(&n.ID, &kind, &n.Text, &sent); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Kind = model.NotificationKind(kind)
		n.SentAt, _ = time.Parse(timeLayout, sent)
		out = append(out, n)
	}
	return out, rows.Err()
}
