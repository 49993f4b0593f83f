package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/assets"
	"github.com/chronicleberg/chronicle-be/internal/services"
	"github.com/chronicleberg/chronicle-be/internal/store"
)

const sweepBatchSize = 50

// Sweeper retries deletes for remote assets that became orphaned when a
// compensating or cascade delete failed. It is the only retry mechanism in
// the system; request paths never retry.
type Sweeper struct {
	orphans  store.OrphanStore
	assets   assets.Store
	eventSvc services.EventServiceProvider
	schedule cron.Schedule
	ticker   *time.Ticker
	done     chan bool
}

// NewSweeper creates a sweeper gated by a standard cron expression.
func NewSweeper(orphans store.OrphanStore, assetStore assets.Store, eventSvc services.EventServiceProvider, cronExpr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		orphans:  orphans,
		assets:   assetStore,
		eventSvc: eventSvc,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting orphaned-asset sweeper...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	nextRun := s.schedule.Next(time.Now())
	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping orphaned-asset sweeper.")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(nextRun) {
				s.sweep(context.Background())
				nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

// sweep deletes a batch of queued orphans. Ids whose delete still fails stay
// queued for the next pass.
func (s *Sweeper) sweep(ctx context.Context) {
	orphans, err := s.orphans.List(ctx, sweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to list orphan assets")
		return
	}
	if len(orphans) == 0 {
		return
	}

	reaped := 0
	for _, orphan := range orphans {
		if err := s.assets.Delete(ctx, orphan.PublicID); err != nil {
			log.Warn().Err(err).Str("public_id", orphan.PublicID).Msg("Sweeper: delete failed, keeping in queue")
			continue
		}
		if err := s.orphans.Remove(ctx, orphan.PublicID); err != nil {
			log.Error().Err(err).Str("public_id", orphan.PublicID).Msg("Sweeper: failed to dequeue reaped orphan")
			continue
		}
		reaped++
	}

	if reaped > 0 {
		log.Info().Int("reaped", reaped).Int("queued", len(orphans)-reaped).Msg("Sweeper pass complete")
		s.eventSvc.Record(ctx, "asset.orphan.reaped", "info", "Sweeper deleted orphaned remote assets", nil)
	}
}
