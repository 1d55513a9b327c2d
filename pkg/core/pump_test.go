package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"wayfargo/pkg/config"
	"wayfargo/pkg/geo"
	"wayfargo/pkg/location"
	"wayfargo/pkg/nav"
	"wayfargo/pkg/routing/mockroute"
	"wayfargo/pkg/tracker"
)

// staticLocation always reports the same fix.
type staticLocation struct {
	fix location.Fix
}

func (s *staticLocation) GetFix(ctx context.Context) (*location.Fix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := s.fix
	f.At = time.Now()
	return &f, nil
}

func (s *staticLocation) Close() error { return nil }

type countingSink struct {
	mu    sync.Mutex
	count int
}

func (c *countingSink) Update(f *location.Fix) {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

func (c *countingSink) seen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func TestPumpFeedsSessionAndSink(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ticker.LocationLoop = config.Duration(5 * time.Millisecond)

	loc := &staticLocation{fix: location.Fix{Point: geo.Point{Lat: 35.68, Lon: 139.76}}}
	session := nav.NewSession(mockroute.New(), nil, tracker.New(), cfg.Nav)
	defer session.Close()
	sink := &countingSink{}

	p := NewPump(cfg, loc, session, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sink.seen() >= 3 && session.Snapshot().LastFix != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if sink.seen() < 3 {
		t.Errorf("sink saw %d fixes, want at least 3", sink.seen())
	}
	snap := session.Snapshot()
	if snap.LastFix == nil {
		t.Fatal("session never saw a fix")
	}
	if snap.LastFix.Lat != 35.68 {
		t.Errorf("session fix = %+v", snap.LastFix)
	}
}

func TestPumpRunsJobs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ticker.LocationLoop = config.Duration(5 * time.Millisecond)

	loc := &staticLocation{fix: location.Fix{Point: geo.Point{Lat: 1, Lon: 1}}}
	session := nav.NewSession(mockroute.New(), nil, tracker.New(), cfg.Nav)
	defer session.Close()

	p := NewPump(cfg, loc, session, nil)

	var mu sync.Mutex
	runs := 0
	p.AddJob(NewTimeJob("test", time.Hour, func(ctx context.Context, f *location.Fix) {
		mu.Lock()
		runs++
		mu.Unlock()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	p.Start(ctx)

	// An hour threshold with firstRun semantics: the job fires once up
	// front and then waits out the threshold.
	mu.Lock()
	defer mu.Unlock()
	if runs < 1 || runs > 2 {
		t.Errorf("job ran %d times, want 1", runs)
	}
}
