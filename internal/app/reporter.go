package app

import (
	"context"
	"time"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/rs/zerolog/log"
)

// SnapshotPublisher ships a stats snapshot to an external sink.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap core.StatsSnapshot) error
}

// Reporter periodically logs the counters and forwards them to an
// optional publisher.
type Reporter struct {
	Stats     core.StatsReader
	Publisher SnapshotPublisher
	Interval  time.Duration
}

func (r *Reporter) Run(ctx context.Context) {
	if r.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Report(ctx)
		}
	}
}

func (r *Reporter) Report(ctx context.Context) {
	snap := r.Stats.Snapshot()
	log.Info().
		Str("module", "app.reporter").
		Int("clients", snap.Connected).
		Int("djs", snap.Broadcasters).
		Int("listeners", snap.Listening).
		Msgf("%d clients, %d djs, %d listeners", snap.Connected, snap.Broadcasters, snap.Listening)
	if r.Publisher == nil {
		return
	}
	if err := r.Publisher.Publish(ctx, snap); err != nil {
		log.Warn().Err(err).Str("module", "app.reporter").Msg("publish stats snapshot")
	}
}
