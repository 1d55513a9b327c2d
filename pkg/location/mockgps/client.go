// Package mockgps simulates a pedestrian GPS receiver. A background motion
// loop walks the configured (or injected) path at a fixed pace; fixes are
// read as snapshots with optional position jitter so downstream consumers
// see realistic noise.
package mockgps

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"wayfargo/pkg/config"
	"wayfargo/pkg/geo"
	"wayfargo/pkg/location"
)

const tickRate = 250 * time.Millisecond

// Client implements location.Provider with simulated movement.
type Client struct {
	mu       sync.Mutex
	pos      geo.Point
	heading  float64
	speed    float64 // m/s
	jitter   float64 // meters, 1-sigma-ish
	path     orb.LineString
	pathLen  float64
	traveled float64
	rng      *rand.Rand

	stopCh    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a mock GPS client at the configured start position and starts
// its motion loop. Without a path it stands still (jitter still applies).
func New(cfg config.MockGPSConfig) *Client {
	speed := cfg.SpeedMPS
	if speed <= 0 {
		speed = 1.4
	}
	c := &Client{
		pos:    geo.Point{Lat: cfg.StartLat, Lon: cfg.StartLon},
		speed:  speed,
		jitter: float64(cfg.JitterMeters),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		stopCh: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.motionLoop()
	return c
}

// SetPath gives the walker a route geometry to follow from its start.
// Progress on any previous path is discarded.
func (c *Client) SetPath(ls orb.LineString) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = ls
	c.pathLen = geo.LineLength(ls)
	c.traveled = 0
	if len(ls) > 0 {
		c.pos = geo.FromOrbPoint(ls[0])
	}
}

// GetFix returns the current simulated position with jitter applied.
func (c *Client) GetFix(ctx context.Context) (*location.Fix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pos
	if c.jitter > 0 {
		p = geo.DestinationPoint(p, c.rng.Float64()*c.jitter, c.rng.Float64()*360)
	}
	speed := 0.0
	if c.pathLen > 0 && c.traveled < c.pathLen {
		speed = c.speed
	}
	return &location.Fix{
		Point:    p,
		Heading:  c.heading,
		SpeedMPS: speed,
		At:       time.Now(),
	}, nil
}

// Close stops the motion loop. Safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCh)
		c.wg.Wait()
	})
	return nil
}

func (c *Client) motionLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			c.advance(dt)
		}
	}
}

// advance walks dt seconds along the path, stopping at its end.
func (c *Client) advance(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pathLen <= 0 || c.traveled >= c.pathLen {
		return
	}
	c.traveled += c.speed * dt
	if c.traveled > c.pathLen {
		c.traveled = c.pathLen
	}
	next := geo.PointAtFraction(c.path, c.traveled/c.pathLen)
	if next != c.pos {
		// Turn halfway toward the segment bearing each tick; a real receiver
		// never snaps its heading through a corner.
		target := geo.Bearing(c.pos, next)
		c.heading = math.Mod(c.heading+geo.NormalizeAngle(target-c.heading)/2+360, 360)
	}
	c.pos = next
}
