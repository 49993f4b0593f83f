package monitoring

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicleberg/chronicle-be/internal/assets"
	"github.com/chronicleberg/chronicle-be/internal/models"
)

type stubOrphanStore struct {
	queued map[string]string
}

func (s *stubOrphanStore) Enqueue(_ context.Context, publicID, reason string) error {
	s.queued[publicID] = reason
	return nil
}

func (s *stubOrphanStore) List(_ context.Context, limit int) ([]models.OrphanAsset, error) {
	var out []models.OrphanAsset
	for id, reason := range s.queued {
		if len(out) == limit {
			break
		}
		out = append(out, models.OrphanAsset{PublicID: id, Reason: reason})
	}
	return out, nil
}

func (s *stubOrphanStore) Remove(_ context.Context, publicID string) error {
	delete(s.queued, publicID)
	return nil
}

type stubAssetStore struct {
	deleted    []string
	failDelete map[string]bool
}

func (s *stubAssetStore) Upload(_ context.Context, _ assets.Upload) (models.AssetRef, error) {
	return models.AssetRef{}, fmt.Errorf("not used")
}

func (s *stubAssetStore) Delete(_ context.Context, publicID string) error {
	if s.failDelete[publicID] {
		return fmt.Errorf("provider refused delete of %s", publicID)
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}

type stubEvents struct {
	types []string
}

func (s *stubEvents) Record(_ context.Context, eventType, _, _ string, _ *string) {
	s.types = append(s.types, eventType)
}

func (s *stubEvents) GetRecent(_ context.Context, _ int) ([]models.Event, error) {
	return nil, nil
}

func TestSweep(t *testing.T) {
	orphans := &stubOrphanStore{queued: map[string]string{
		"asset-a": "create rollback",
		"asset-b": "blog delete",
	}}
	assetStore := &stubAssetStore{failDelete: map[string]bool{"asset-b": true}}
	events := &stubEvents{}

	sweeper, err := NewSweeper(orphans, assetStore, events, "* * * * *")
	require.NoError(t, err)

	sweeper.sweep(context.Background())

	// asset-a is reaped and dequeued; asset-b stays for the next pass.
	assert.Contains(t, assetStore.deleted, "asset-a")
	assert.NotContains(t, orphans.queued, "asset-a")
	assert.Contains(t, orphans.queued, "asset-b")
	assert.Contains(t, events.types, "asset.orphan.reaped")
}

func TestSweepEmptyQueue(t *testing.T) {
	orphans := &stubOrphanStore{queued: map[string]string{}}
	assetStore := &stubAssetStore{}
	events := &stubEvents{}

	sweeper, err := NewSweeper(orphans, assetStore, events, "*/15 * * * *")
	require.NoError(t, err)

	sweeper.sweep(context.Background())
	assert.Empty(t, assetStore.deleted)
	assert.Empty(t, events.types, "no event for an idle pass")
}

func TestNewSweeperRejectsBadSchedule(t *testing.T) {
	_, err := NewSweeper(&stubOrphanStore{}, &stubAssetStore{}, &stubEvents{}, "not a cron expr")
	assert.Error(t, err)
}
