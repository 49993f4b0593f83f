// Package store wraps the persistence collaborator behind per-aggregate
// adapters. Services consume the interfaces; the sqlite implementations live
// alongside them.
package store

import (
	"context"
	"errors"

	"github.com/chronicleberg/chronicle-be/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// UserStore is the credential store adapter.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	// FindByEmail includes the password hash for credential verification.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

// BlogStore persists blog documents. Each call is a single document-level
// operation; the engine offers no multi-document transactions.
type BlogStore interface {
	Create(ctx context.Context, blog models.Blog) error
	FindByID(ctx context.Context, id string) (models.Blog, error)
	FindPublished(ctx context.Context) ([]models.Blog, error)
	FindByAuthor(ctx context.Context, userID string) ([]models.Blog, error)
	Update(ctx context.Context, blog models.Blog) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// EventStore persists activity-feed events.
type EventStore interface {
	Insert(ctx context.Context, event models.Event) error
	Recent(ctx context.Context, limit int) ([]models.Event, error)
}

// OrphanStore queues remote asset ids whose delete must be retried.
type OrphanStore interface {
	Enqueue(ctx context.Context, publicID, reason string) error
	List(ctx context.Context, limit int) ([]models.OrphanAsset, error)
	Remove(ctx context.Context, publicID string) error
}
