package core

import (
	"context"
	"log/slog"
	"time"

	"wayfargo/pkg/db"
	"wayfargo/pkg/location"
)

const (
	pruneInterval   = time.Hour
	cacheRetention  = 14 * 24 * time.Hour
	eventsRetention = 90 * 24 * time.Hour
)

// NewPruneJob returns a job that trims old HTTP cache entries and trip
// events from the database once an hour.
func NewPruneJob(d *db.DB) *TimeJob {
	return NewTimeJob("Prune", pruneInterval, func(ctx context.Context, _ *location.Fix) {
		if err := d.PruneCache(cacheRetention); err != nil {
			slog.Error("Prune: failed to trim cache", "error", err)
		}
		if err := d.PruneEvents(eventsRetention); err != nil {
			slog.Error("Prune: failed to trim events", "error", err)
		}
	})
}
