package tracker

import (
	"sync"
	"testing"
)

func TestTrackerCounters(t *testing.T) {
	tr := New()
	tr.TrackCacheHit("osrm")
	tr.TrackCacheMiss("osrm")
	tr.TrackAPISuccess("osrm")
	tr.TrackAPIFailure("osrm")
	tr.TrackRouteEmpty("osrm")
	tr.TrackStaleDiscard("osrm")
	tr.TrackAPISuccess("osrm")

	snap := tr.Snapshot()
	s, ok := snap["osrm"]
	if !ok {
		t.Fatal("provider missing from snapshot")
	}
	if s.CacheHits != 1 || s.CacheMisses != 1 || s.APISuccess != 2 ||
		s.APIFailures != 1 || s.RouteEmpty != 1 || s.StaleDiscards != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.TrackAPISuccess("osrm")
				tr.TrackStaleDiscard("mock")
			}
		}()
	}
	wg.Wait()

	snap := tr.Snapshot()
	if snap["osrm"].APISuccess != 1000 {
		t.Errorf("APISuccess = %d, expected 1000", snap["osrm"].APISuccess)
	}
	if snap["mock"].StaleDiscards != 1000 {
		t.Errorf("StaleDiscards = %d, expected 1000", snap["mock"].StaleDiscards)
	}
}
