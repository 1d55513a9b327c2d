package nav

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"wayfargo/pkg/config"
	"wayfargo/pkg/geo"
	"wayfargo/pkg/logging"
	"wayfargo/pkg/model"
	"wayfargo/pkg/polyline"
	"wayfargo/pkg/routing"
	"wayfargo/pkg/store"
	"wayfargo/pkg/tracker"
)

const defaultQueueDepth = 64

// Session is the navigation session actor. All state lives on a single
// goroutine; public methods post commands onto a queue, so a location tick
// racing a waypoint edit is applied in order, never interleaved.
type Session struct {
	provider routing.Provider
	events   store.EventStore // optional
	stats    *tracker.Tracker

	arrivalRadius float64

	cmds      chan func()
	stopCh    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	// Actor-owned state. Only the run loop touches these.
	st        sessionState
	gen       uint64 // generation of the newest route fetch issued
	fetching  bool
	wantRoute bool // navigation started before the first fix; fetch on next tick

	// pathSink feeds fresh route geometry to a simulated GPS walker.
	pathSink func(orb.LineString)

	subMu  sync.Mutex
	subs   map[uint64]chan model.SessionSnapshot
	subSeq uint64
}

type sessionState struct {
	mode        model.SessionMode
	destination *model.Destination
	route       *model.Route
	waypoints   []model.Waypoint
	stepIndex   int
	arrival     bool
	originalETA time.Time
	travelMode  model.TravelMode
	routeStale  bool
	lastFix     *model.Coordinate
	remaining   float64
}

// NewSession creates the session actor and starts its run loop.
// events may be nil; trip events are then only written to the event log.
func NewSession(provider routing.Provider, events store.EventStore, stats *tracker.Tracker, cfg config.NavConfig) *Session {
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = defaultQueueDepth
	}
	radius := float64(cfg.ArrivalRadius)
	if radius <= 0 {
		radius = DefaultArrivalRadius
	}
	s := &Session{
		provider:      provider,
		events:        events,
		stats:         stats,
		arrivalRadius: radius,
		cmds:          make(chan func(), depth),
		stopCh:        make(chan struct{}),
		subs:          make(map[uint64]chan model.SessionSnapshot),
		st: sessionState{
			mode:       model.ModeIdle,
			travelMode: model.ModeWalk,
		},
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// SetPathSink registers a callback that receives the decoded geometry of
// every applied route. Used to drive the mock GPS walker.
func (s *Session) SetPathSink(sink func(orb.LineString)) {
	s.do(func() { s.pathSink = sink })
}

// Close stops the actor. Pending commands are dropped.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
	})
}

func (s *Session) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopCh:
			return
		case fn := <-s.cmds:
			fn()
		}
	}
}

// do posts fn to the actor and waits for it to finish.
func (s *Session) do(fn func()) {
	done := make(chan struct{})
	wrapped := func() {
		fn()
		close(done)
	}
	select {
	case s.cmds <- wrapped:
	case <-s.stopCh:
		return
	}
	select {
	case <-done:
	case <-s.stopCh:
	}
}

// post enqueues fn without waiting. Returns false if the queue is full.
func (s *Session) post(fn func()) bool {
	select {
	case s.cmds <- fn:
		return true
	case <-s.stopCh:
		return false
	default:
		return false
	}
}

// LocationUpdated feeds a GPS fix into the session. Never blocks: if the
// queue is full the tick is dropped, the next one supersedes it anyway.
func (s *Session) LocationUpdated(c model.Coordinate) {
	if !s.post(func() { s.handleLocation(c) }) {
		slog.Debug("Session queue full, dropping location tick")
	}
}

// ViewDestination shows a destination without planning a route.
func (s *Session) ViewDestination(d model.Destination) {
	s.do(func() { s.handleViewDestination(d) })
}

// StartNavigation begins navigating to the destination with the current
// travel mode. The route is fetched asynchronously; until it lands the
// session navigates with route=nil (tracker and arrival are no-ops).
func (s *Session) StartNavigation(d model.Destination) {
	s.do(func() { s.handleStartNavigation(d) })
}

// SetTravelMode switches the travel mode. While navigating this discards
// the current route and requests a fresh one; waypoints are untouched.
func (s *Session) SetTravelMode(m model.TravelMode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown travel mode %q", m)
	}
	s.do(func() { s.handleSetTravelMode(m) })
	return nil
}

// AddWaypoint inserts a stop at index (-1 appends before the destination)
// and triggers a multi-point replan. Returns the created waypoint and
// whether the edit applied; invalid edits are no-ops.
func (s *Session) AddWaypoint(name string, c model.Coordinate, index int) (model.Waypoint, bool) {
	var (
		wp model.Waypoint
		ok bool
	)
	s.do(func() { wp, ok = s.handleAddWaypoint(name, c, index) })
	return wp, ok
}

// RemoveWaypoint removes a stop by id and triggers a multi-point replan.
// Unknown ids are no-ops.
func (s *Session) RemoveWaypoint(id string) bool {
	var ok bool
	s.do(func() { ok = s.handleRemoveWaypoint(id) })
	return ok
}

// MarkWaypointVisited checks off a stop. The current target advances to the
// next unvisited waypoint; no replan is needed, the route already covers
// the remaining stops.
func (s *Session) MarkWaypointVisited(id string) bool {
	var ok bool
	s.do(func() { ok = s.handleMarkVisited(id) })
	return ok
}

// GoHome tears the session down to idle, clearing destination, route,
// waypoints, and the arrival latch. Any in-flight route fetch is orphaned.
func (s *Session) GoHome() {
	s.do(func() { s.handleGoHome() })
}

// Snapshot returns an immutable view of the current session state.
func (s *Session) Snapshot() model.SessionSnapshot {
	var snap model.SessionSnapshot
	s.do(func() { snap = s.snapshot() })
	return snap
}

// Subscribe returns a channel of session snapshots, published after every
// state change, and a cancel function. Slow subscribers miss snapshots
// rather than blocking the actor.
func (s *Session) Subscribe() (<-chan model.SessionSnapshot, func()) {
	ch := make(chan model.SessionSnapshot, 8)
	s.subMu.Lock()
	s.subSeq++
	id := s.subSeq
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// Actor-side handlers below. Never call these off the run loop.

func (s *Session) handleLocation(c model.Coordinate) {
	s.st.lastFix = &c

	if s.st.mode != model.ModeNavigating || s.st.destination == nil {
		return
	}

	if s.wantRoute && !s.fetching {
		s.wantRoute = false
		s.startFetch()
	}

	current := geo.FromCoordinate(c)
	dest := geo.FromCoordinate(s.st.destination.Coords)

	// A stale route may still be displayed, but it must not drive
	// progress: its totals belong to geometry that no longer applies.
	activeRoute := s.st.route
	if s.st.routeStale {
		activeRoute = nil
	}

	p := TrackProgress(current, dest, activeRoute, s.st.stepIndex)
	s.st.remaining = p.RemainingMeters
	if p.Advanced {
		s.st.stepIndex = p.StepIndex
		step := activeRoute.Steps[p.StepIndex]
		s.emit(model.EventStepAdvanced, fmt.Sprintf("Step %d", p.StepIndex+1), step.Instruction)
	}

	if activeRoute != nil {
		arrived, latched := CheckArrival(current, dest, s.arrivalRadius, s.st.arrival)
		s.st.arrival = arrived
		if latched {
			s.st.mode = model.ModeCompanion
			s.emit(model.EventArrival, "Arrived", fmt.Sprintf("Arrived at %s", s.st.destination.Name))
		}
	}

	s.broadcast()
}

func (s *Session) handleViewDestination(d model.Destination) {
	// Orphan any in-flight fetch from an abandoned navigation; viewing a
	// destination holds no route, so a late result must not attach one.
	s.gen++
	s.fetching = false
	s.wantRoute = false
	s.st.mode = model.ModeViewingDetail
	s.st.destination = &d
	s.st.route = nil
	s.st.routeStale = false
	s.st.waypoints = nil
	s.st.stepIndex = 0
	s.st.arrival = false
	s.st.originalETA = time.Time{}
	s.broadcast()
}

func (s *Session) handleStartNavigation(d model.Destination) {
	s.st.mode = model.ModeNavigating
	s.st.destination = &d
	s.st.route = nil
	s.st.routeStale = false
	s.st.waypoints = nil
	s.st.stepIndex = 0
	s.st.arrival = false
	s.st.originalETA = time.Time{}
	s.emit(model.EventNavigationStarted, "Navigation started", fmt.Sprintf("Heading to %s by %s", d.Name, s.st.travelMode))

	if s.st.lastFix == nil {
		// No fix yet; the first location tick issues the fetch.
		s.wantRoute = true
	} else {
		s.startFetch()
	}
	s.broadcast()
}

func (s *Session) handleSetTravelMode(m model.TravelMode) {
	if s.st.travelMode == m {
		return
	}
	s.st.travelMode = m
	s.emit(model.EventModeChanged, "Travel mode changed", string(m))

	if s.st.mode == model.ModeNavigating {
		s.st.routeStale = true
		s.st.stepIndex = 0
		s.startFetch()
	}
	s.broadcast()
}

func (s *Session) handleAddWaypoint(name string, c model.Coordinate, index int) (model.Waypoint, bool) {
	if s.st.mode != model.ModeNavigating {
		return model.Waypoint{}, false
	}
	wp := NewWaypoint(name, c)
	list, ok := InsertWaypoint(s.st.waypoints, wp, index)
	if !ok {
		slog.Warn("Ignoring out-of-range waypoint insert", "index", index, "count", len(s.st.waypoints))
		return model.Waypoint{}, false
	}
	s.st.waypoints = list
	s.st.routeStale = true
	s.emit(model.EventWaypointAdded, "Waypoint added", name)
	s.startFetch()
	s.broadcast()
	return wp, true
}

func (s *Session) handleRemoveWaypoint(id string) bool {
	list, ok := RemoveWaypoint(s.st.waypoints, id)
	if !ok {
		slog.Warn("Ignoring removal of unknown waypoint", "id", id)
		return false
	}
	s.st.waypoints = list
	s.st.routeStale = true
	s.emit(model.EventWaypointRemoved, "Waypoint removed", id)
	if s.st.mode == model.ModeNavigating {
		s.startFetch()
	}
	s.broadcast()
	return true
}

func (s *Session) handleMarkVisited(id string) bool {
	if !MarkVisited(s.st.waypoints, id) {
		slog.Warn("Ignoring visit of unknown waypoint", "id", id)
		return false
	}
	s.emit(model.EventWaypointVisited, "Waypoint visited", id)
	s.broadcast()
	return true
}

func (s *Session) handleGoHome() {
	if s.st.mode != model.ModeIdle {
		s.emit(model.EventSessionEnded, "Session ended", "")
	}
	// Orphan any in-flight fetch; its result will fail the generation check.
	s.gen++
	s.fetching = false
	s.wantRoute = false
	s.st = sessionState{
		mode:       model.ModeIdle,
		travelMode: s.st.travelMode,
		lastFix:    s.st.lastFix,
	}
	s.broadcast()
}

// startFetch issues an asynchronous route fetch under a fresh generation.
// A newer fetch supersedes an older one: the older result fails the
// generation check on arrival and is discarded (last request wins).
func (s *Session) startFetch() {
	if s.st.destination == nil || s.st.lastFix == nil {
		s.wantRoute = true
		return
	}
	s.gen++
	gen := s.gen
	s.fetching = true

	origin := *s.st.lastFix
	dest := s.st.destination.Coords
	mode := routing.ModeForTravel(s.st.travelMode)
	points := RoutePoints(origin, s.st.waypoints, dest)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		var (
			route *model.Route
			err   error
		)
		if len(points) > 2 {
			route, err = s.provider.GetMultiPointRoute(ctx, points)
		} else {
			route, err = s.provider.GetRoute(ctx, origin, dest, mode)
		}
		if err != nil {
			slog.Warn("Route fetch failed", "error", err, "generation", gen)
			route = nil
		}
		if !s.post(func() { s.handleRouteResult(gen, route) }) {
			// Closed or saturated session; nothing to apply the result to.
			slog.Debug("Dropping route result", "generation", gen)
		}
	}()
}

func (s *Session) handleRouteResult(gen uint64, route *model.Route) {
	if gen != s.gen {
		// A superseding request was issued while this one was in flight.
		// Applying it would corrupt step indices against newer geometry.
		s.stats.TrackStaleDiscard("session")
		slog.Info("Discarding stale route result", "generation", gen, "current", s.gen)
		return
	}
	s.fetching = false

	if route == nil {
		s.emit(model.EventRouteUnavailable, "Route unavailable", "The directions service returned no route")
		s.broadcast()
		return
	}

	s.st.route = route
	s.st.routeStale = false
	s.st.stepIndex = 0
	if s.st.originalETA.IsZero() {
		s.st.originalETA = time.Now().Add(time.Duration(route.TotalDurationMinutes * float64(time.Minute)))
	}
	s.emit(model.EventRouteReplaced, "Route ready",
		fmt.Sprintf("%.0fm, %.0f min, %d steps", route.TotalDistanceMeters, route.TotalDurationMinutes, len(route.Steps)))

	if s.pathSink != nil && route.Polyline != "" {
		s.pathSink(polyline.DecodeLineString(route.Polyline))
	}
	s.broadcast()
}

func (s *Session) snapshot() model.SessionSnapshot {
	snap := model.SessionSnapshot{
		Mode:                 s.st.mode,
		CurrentWaypointIndex: CurrentTarget(s.st.waypoints),
		CurrentStepIndex:     s.st.stepIndex,
		ArrivalDetected:      s.st.arrival,
		OriginalETA:          s.st.originalETA,
		TravelMode:           s.st.travelMode,
		RouteStale:           s.st.routeStale,
		RemainingMeters:      s.st.remaining,
	}
	if s.st.destination != nil {
		d := *s.st.destination
		snap.Destination = &d
	}
	if s.st.route != nil {
		r := *s.st.route
		snap.Route = &r
	}
	if s.st.lastFix != nil {
		c := *s.st.lastFix
		snap.LastFix = &c
	}
	snap.Waypoints = make([]model.Waypoint, len(s.st.waypoints))
	copy(snap.Waypoints, s.st.waypoints)
	return snap
}

func (s *Session) broadcast() {
	snap := s.snapshot()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Session) emit(eventType, title, summary string) {
	ev := &model.NavEvent{
		Type:      eventType,
		Title:     title,
		Summary:   summary,
		Timestamp: time.Now(),
	}
	logging.LogEvent(ev)
	if s.events != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.events.SaveEvent(ctx, ev); err != nil {
			slog.Error("Failed to persist trip event", "type", eventType, "error", err)
		}
	}
}
