package store

import (
	"context"
	"database/sql"

	"github.com/chronicleberg/chronicle-be/internal/models"
)

// SQLiteEventStore is the sqlite-backed activity-event store.
type SQLiteEventStore struct {
	db *sql.DB
}

// NewSQLiteEventStore creates a new SQLiteEventStore.
func NewSQLiteEventStore(db *sql.DB) *SQLiteEventStore {
	return &SQLiteEventStore{db: db}
}

// Insert logs a new event.
func (s *SQLiteEventStore) Insert(ctx context.Context, event models.Event) error {
	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO events (id, type, level, message, subject_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, event.ID, event.Type, event.Level, event.Message, event.SubjectID)
	return err
}

// Recent retrieves the most recent events.
func (s *SQLiteEventStore) Recent(ctx context.Context, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, type, level, message, subject_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.SubjectID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
