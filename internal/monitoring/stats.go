package monitoring

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/chronicleberg/chronicle-be/internal/store"
	"github.com/chronicleberg/chronicle-be/internal/websocket"
)

// PlatformStats is a point-in-time host and content snapshot.
type PlatformStats struct {
	CPUPercent  float64   `json:"cpuPercent"`
	MemPercent  float64   `json:"memPercent"`
	DiskPercent float64   `json:"diskPercent"`
	Users       int       `json:"users"`
	Blogs       int       `json:"blogs"`
	CollectedAt time.Time `json:"collectedAt"`
}

// StatUpdater periodically collects platform stats and pushes them to the
// activity feed. Admins can also pull a fresh snapshot on demand.
type StatUpdater struct {
	users  store.UserStore
	blogs  store.BlogStore
	hub    *websocket.Hub
	ticker *time.Ticker
	done   chan bool
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(users store.UserStore, blogs store.BlogStore, hub *websocket.Hub) *StatUpdater {
	return &StatUpdater{users: users, blogs: blogs, hub: hub, done: make(chan bool)}
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")
	su.ticker = time.NewTicker(30 * time.Second)
	defer su.ticker.Stop()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-su.ticker.C:
			su.broadcast()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	su.done <- true
}

// Collect gathers a fresh snapshot.
func (su *StatUpdater) Collect(ctx context.Context) (PlatformStats, error) {
	stats := PlatformStats{CollectedAt: time.Now()}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemPercent = vm.UsedPercent
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	users, err := su.users.Count(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	blogs, err := su.blogs.Count(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	stats.Users = users
	stats.Blogs = blogs

	return stats, nil
}

func (su *StatUpdater) broadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := su.Collect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: failed to collect platform stats")
		return
	}

	payload, err := json.Marshal(websocket.Message{Action: "stats", Payload: stats})
	if err != nil {
		return
	}
	su.hub.Publish(payload)
}
