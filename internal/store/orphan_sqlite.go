package store

import (
	"context"
	"database/sql"

	"github.com/chronicleberg/chronicle-be/internal/models"
)

// SQLiteOrphanStore is the sqlite-backed orphaned-asset queue.
type SQLiteOrphanStore struct {
	db *sql.DB
}

// NewSQLiteOrphanStore creates a new SQLiteOrphanStore.
func NewSQLiteOrphanStore(db *sql.DB) *SQLiteOrphanStore {
	return &SQLiteOrphanStore{db: db}
}

// Enqueue records a remote asset id for later deletion. Re-queueing the same
// id updates the reason and keeps a single row.
func (s *SQLiteOrphanStore) Enqueue(ctx context.Context, publicID, reason string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO orphan_assets (public_id, reason) VALUES (?, ?) ON CONFLICT(public_id) DO UPDATE SET reason = excluded.reason",
		publicID, reason)
	return err
}

// List returns up to limit queued orphans, oldest first.
func (s *SQLiteOrphanStore) List(ctx context.Context, limit int) ([]models.OrphanAsset, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT public_id, reason, queued_at FROM orphan_assets ORDER BY queued_at ASC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orphans []models.OrphanAsset
	for rows.Next() {
		var orphan models.OrphanAsset
		if err := rows.Scan(&orphan.PublicID, &orphan.Reason, &orphan.QueuedAt); err != nil {
			return nil, err
		}
		orphans = append(orphans, orphan)
	}
	return orphans, rows.Err()
}

// Remove drops a reaped orphan from the queue.
func (s *SQLiteOrphanStore) Remove(ctx context.Context, publicID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM orphan_assets WHERE public_id = ?", publicID)
	return err
}

var _ OrphanStore = (*SQLiteOrphanStore)(nil)
var _ UserStore = (*SQLiteUserStore)(nil)
var _ BlogStore = (*SQLiteBlogStore)(nil)
var _ EventStore = (*SQLiteEventStore)(nil)
