// Package assets wraps the remote media-storage collaborator. An upload
// either yields a complete asset reference or fails; no partial reference is
// ever returned.
package assets

import (
	"context"
	"io"

	"github.com/chronicleberg/chronicle-be/internal/models"
)

// Upload is one inbound media file handed to the store.
type Upload struct {
	Name        string // original filename, used for the object key extension
	ContentType string // declared media type
	Size        int64
	Data        io.Reader
}

// Store is the asset store adapter.
type Store interface {
	Upload(ctx context.Context, up Upload) (models.AssetRef, error)
	// Delete is best-effort from the caller's point of view: a failure must
	// never block the operation that triggered it, but it is surfaced so the
	// caller can queue the id for the sweeper.
	Delete(ctx context.Context, publicID string) error
}
