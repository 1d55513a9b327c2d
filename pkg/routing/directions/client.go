// Package directions implements routing.Provider against a Routes-v2-style
// directions API (POST computeRoutes with an API key and a field mask).
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"wayfargo/pkg/config"
	"wayfargo/pkg/model"
	"wayfargo/pkg/request"
	"wayfargo/pkg/routing"
	"wayfargo/pkg/tracker"
)

const computePath = "/directions/v2:computeRoutes"

// fieldMask limits the response to what we actually parse. The service bills
// by field mask breadth, so keep this in sync with the wire types below.
const fieldMask = "routes.distanceMeters," +
	"routes.duration," +
	"routes.polyline.encodedPolyline," +
	"routes.legs.steps.travelMode," +
	"routes.legs.steps.distanceMeters," +
	"routes.legs.steps.staticDuration," +
	"routes.legs.steps.navigationInstruction.instructions," +
	"routes.legs.steps.transitDetails"

// Client fetches routes over HTTP via the shared request client.
type Client struct {
	http    *request.Client
	tracker *tracker.Tracker
	baseURL string
	apiKey  string
}

// New creates a directions client from the routing config.
func New(rc *request.Client, tr *tracker.Tracker, cfg config.RoutingConfig) *Client {
	return &Client{
		http:    rc,
		tracker: tr,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// Wire types for the computeRoutes request.

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type location struct {
	LatLng latLng `json:"latLng"`
}

type endpoint struct {
	Location location `json:"location"`
}

type computeRequest struct {
	Origin                   endpoint   `json:"origin"`
	Destination              endpoint   `json:"destination"`
	Intermediates            []endpoint `json:"intermediates,omitempty"`
	TravelMode               string     `json:"travelMode"`
	ComputeAlternativeRoutes bool       `json:"computeAlternativeRoutes"`
}

// Wire types for the computeRoutes response.

type computeResponse struct {
	Routes []routeData `json:"routes"`
}

type routeData struct {
	DistanceMeters float64 `json:"distanceMeters"`
	Duration       string  `json:"duration"`
	Polyline       struct {
		EncodedPolyline string `json:"encodedPolyline"`
	} `json:"polyline"`
	Legs []legData `json:"legs"`
}

type legData struct {
	Steps []stepData `json:"steps"`
}

type stepData struct {
	TravelMode            string  `json:"travelMode"`
	DistanceMeters        float64 `json:"distanceMeters"`
	StaticDuration        string  `json:"staticDuration"`
	NavigationInstruction struct {
		Instructions string `json:"instructions"`
	} `json:"navigationInstruction"`
	TransitDetails *transitDetails `json:"transitDetails,omitempty"`
}

type transitDetails struct {
	Headsign    string `json:"headsign"`
	TransitLine struct {
		Name      string `json:"name"`
		NameShort string `json:"nameShort"`
		Vehicle   struct {
			Type string `json:"type"`
		} `json:"vehicle"`
	} `json:"transitLine"`
}

// GetRoute plans a single-leg route between origin and destination.
func (c *Client) GetRoute(ctx context.Context, origin, destination model.Coordinate, mode routing.RequestMode) (*model.Route, error) {
	body := computeRequest{
		Origin:      toEndpoint(origin),
		Destination: toEndpoint(destination),
		TravelMode:  apiMode(mode),
	}
	key := fmt.Sprintf("route:%s:%s:%s", mode, coordKey(origin), coordKey(destination))
	return c.compute(ctx, body, key)
}

// GetMultiPointRoute plans a route visiting every point in order. The
// directions service does not accept intermediates in transit mode, so
// multi-point plans are always requested as walking legs.
func (c *Client) GetMultiPointRoute(ctx context.Context, points []model.Coordinate) (*model.Route, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("multi-point route requires at least 2 points, got %d", len(points))
	}
	body := computeRequest{
		Origin:      toEndpoint(points[0]),
		Destination: toEndpoint(points[len(points)-1]),
		TravelMode:  "WALK",
	}
	var sb strings.Builder
	for _, p := range points[1 : len(points)-1] {
		body.Intermediates = append(body.Intermediates, toEndpoint(p))
		sb.WriteString(":")
		sb.WriteString(coordKey(p))
	}
	key := fmt.Sprintf("route:multi:%s%s:%s", coordKey(points[0]), sb.String(), coordKey(points[len(points)-1]))
	return c.compute(ctx, body, key)
}

func (c *Client) compute(ctx context.Context, body computeRequest, cacheKey string) (*model.Route, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route request: %w", err)
	}

	headers := map[string]string{
		"Content-Type":     "application/json",
		"X-Goog-Api-Key":   c.apiKey,
		"X-Goog-FieldMask": fieldMask,
	}

	data, err := c.http.PostWithHeaders(ctx, c.baseURL+computePath, payload, headers, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}

	var resp computeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse route response: %w", err)
	}
	if len(resp.Routes) == 0 {
		c.tracker.TrackRouteEmpty("google")
		slog.Warn("Directions service returned no routes", "key", cacheKey)
		return nil, nil
	}

	route := toRoute(resp.Routes[0])
	if route == nil {
		c.tracker.TrackRouteEmpty("google")
		slog.Warn("Directions service returned a route without steps", "key", cacheKey)
	}
	return route, nil
}

// toRoute converts the first route of a response to the internal model.
// A route without usable steps is treated as no route at all.
func toRoute(rd routeData) *model.Route {
	var steps []model.RouteStep
	for _, leg := range rd.Legs {
		for _, s := range leg.Steps {
			steps = append(steps, toStep(s))
		}
	}
	if len(steps) == 0 {
		return nil
	}
	return &model.Route{
		Steps:                steps,
		TotalDistanceMeters:  rd.DistanceMeters,
		TotalDurationMinutes: durationMinutes(rd.Duration),
		Polyline:             rd.Polyline.EncodedPolyline,
	}
}

func toStep(s stepData) model.RouteStep {
	step := model.RouteStep{
		Mode:            model.ModeWalk,
		Instruction:     s.NavigationInstruction.Instructions,
		DistanceMeters:  s.DistanceMeters,
		DurationMinutes: durationMinutes(s.StaticDuration),
	}
	switch s.TravelMode {
	case "TRANSIT":
		if td := s.TransitDetails; td != nil {
			if td.TransitLine.Vehicle.Type == "BUS" {
				step.Mode = model.ModeBus
			} else {
				step.Mode = model.ModeTrain
			}
			step.Line = td.TransitLine.NameShort
			if step.Line == "" {
				step.Line = td.TransitLine.Name
			}
			step.Direction = td.Headsign
			if step.Direction == "" {
				step.Direction = step.Line
			}
		}
	case "DRIVE":
		step.Mode = model.ModeTaxi
	}
	return step
}

// durationMinutes parses the service's "123s" duration strings into minutes.
func durationMinutes(d string) float64 {
	secs, err := strconv.ParseFloat(strings.TrimSuffix(d, "s"), 64)
	if err != nil {
		return 0
	}
	return secs / 60
}

func apiMode(m routing.RequestMode) string {
	switch m {
	case routing.RequestTransit:
		return "TRANSIT"
	case routing.RequestDrive:
		return "DRIVE"
	default:
		return "WALK"
	}
}

func toEndpoint(c model.Coordinate) endpoint {
	return endpoint{Location: location{LatLng: latLng{Latitude: c.Lat, Longitude: c.Lon}}}
}

// coordKey rounds to ~1m so nearby requests share a cache entry.
func coordKey(c model.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}
