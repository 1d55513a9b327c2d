// Package core drives the engine heartbeat: it polls the geolocation
// provider, feeds fixes to the navigation session, and evaluates
// housekeeping jobs on each tick.
package core

import (
	"context"
	"log/slog"
	"time"

	"wayfargo/pkg/config"
	"wayfargo/pkg/location"
	"wayfargo/pkg/nav"
)

// FixSink is a consumer of the high-frequency fix stream.
type FixSink interface {
	Update(f *location.Fix)
}

// Pump is the central location loop.
type Pump struct {
	cfg     *config.Config
	loc     location.Provider
	session *nav.Session
	sink    FixSink
	jobs    []Job
}

// NewPump creates the location pump. sink may be nil.
func NewPump(cfg *config.Config, loc location.Provider, session *nav.Session, sink FixSink) *Pump {
	return &Pump{
		cfg:     cfg,
		loc:     loc,
		session: session,
		sink:    sink,
	}
}

// AddJob registers a housekeeping job.
func (p *Pump) AddJob(j Job) {
	p.jobs = append(p.jobs, j)
}

// Start runs the main loop. It blocks until the context is cancelled.
func (p *Pump) Start(ctx context.Context) {
	interval := time.Duration(p.cfg.Ticker.LocationLoop)
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Location pump started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Location pump stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Pump) tick(ctx context.Context) {
	fix, err := p.loc.GetFix(ctx)
	if err != nil {
		slog.Debug("failed to read location fix", "error", err)
		return
	}

	p.session.LocationUpdated(fix.Point.Coordinate())

	if p.sink != nil {
		p.sink.Update(fix)
	}

	for _, job := range p.jobs {
		if job.ShouldFire(fix) {
			// Fire and forget; jobs guard their own re-entry.
			go job.Run(ctx, fix)
		}
	}
}
