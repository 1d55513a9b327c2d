package geo

import (
	"sync"
	"time"
)

// TrackBuffer maintains a rolling window of GPS fixes and derives the average
// ground track and speed. Raw fix-to-fix bearings are too jittery at walking
// pace to drive a compass arrow directly.
type TrackBuffer struct {
	mu         sync.RWMutex
	samples    []fixSample
	windowSize int
}

type fixSample struct {
	point Point
	at    time.Time
}

// NewTrackBuffer creates a new buffer with the specified sample window size.
func NewTrackBuffer(windowSize int) *TrackBuffer {
	if windowSize < 2 {
		windowSize = 2
	}
	return &TrackBuffer{
		windowSize: windowSize,
	}
}

// Push adds a new fix to the buffer and returns the current calculated track (bearing).
// If the buffer has fewer than 2 fixes, it returns the provided default heading.
func (b *TrackBuffer) Push(p Point, at time.Time, defaultHeading float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.samples = append(b.samples, fixSample{point: p, at: at})
	if len(b.samples) > b.windowSize {
		b.samples = b.samples[1:]
	}

	if len(b.samples) < 2 {
		return defaultHeading
	}

	// Bearing from oldest to newest fix in the window
	return Bearing(b.samples[0].point, b.samples[len(b.samples)-1].point)
}

// Speed returns the average ground speed across the window in meters per
// second, or 0 if fewer than two fixes are buffered.
func (b *TrackBuffer) Speed() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.samples) < 2 {
		return 0
	}
	first := b.samples[0]
	last := b.samples[len(b.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return Distance(first.point, last.point) / dt
}

// Reset clears the buffer history.
func (b *TrackBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = nil
}
