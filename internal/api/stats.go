package api

import (
	"net/http"

	"wayfargo/pkg/tracker"
)

// StatsHandler serves per-provider usage statistics.
type StatsHandler struct {
	tracker *tracker.Tracker
}

func NewStatsHandler(t *tracker.Tracker) *StatsHandler {
	return &StatsHandler{tracker: t}
}

// ProviderStatsDTO is the JSON shape of one provider's counters.
type ProviderStatsDTO struct {
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	APISuccess    int64 `json:"api_success"`
	APIFailures   int64 `json:"api_errors"`
	RouteEmpty    int64 `json:"route_empty"`
	StaleDiscards int64 `json:"stale_discards"`
	HitRate       int64 `json:"hit_rate"`
}

// StatsResponse maps provider name to counters.
type StatsResponse struct {
	Providers map[string]ProviderStatsDTO `json:"providers"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.tracker.Snapshot()

	resp := StatsResponse{Providers: make(map[string]ProviderStatsDTO, len(snap))}
	for name, s := range snap {
		dto := ProviderStatsDTO{
			CacheHits:     s.CacheHits,
			CacheMisses:   s.CacheMisses,
			APISuccess:    s.APISuccess,
			APIFailures:   s.APIFailures,
			RouteEmpty:    s.RouteEmpty,
			StaleDiscards: s.StaleDiscards,
		}
		if total := s.CacheHits + s.CacheMisses; total > 0 {
			dto.HitRate = s.CacheHits * 100 / total
		}
		resp.Providers[name] = dto
	}

	writeJSON(w, resp)
}
