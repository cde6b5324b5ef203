package mta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/jusunglee/mta-departures/internal/static"
)

func testIndex() *static.Index {
	return static.NewIndex(
		[]static.Complex{
			{ID: 611, Name: "Times Sq-42 St", DaytimeRoutes: []string{"1", "7"}},
			{ID: 610, Name: "Grand Central-42 St", DaytimeRoutes: []string{"4", "7"}},
		},
		[]static.Station{
			{StopID: "127", Line: "Broadway-7th Ave", ComplexID: 611},
			{StopID: "725", Line: "Flushing", ComplexID: 611},
			{StopID: "631", Line: "Lexington Ave", ComplexID: 610},
			{StopID: "723", Line: "Flushing", ComplexID: 610},
		},
	)
}

func tripEntity(id, routeID string, stops map[string]int64) *gtfs.FeedEntity {
	tu := &gtfs.TripUpdate{Trip: &gtfs.TripDescriptor{RouteId: proto.String(routeID)}}
	for stopID, departure := range stops {
		tu.StopTimeUpdate = append(tu.StopTimeUpdate, &gtfs.TripUpdate_StopTimeUpdate{
			StopId:    proto.String(stopID),
			Departure: &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(departure)},
		})
	}
	return &gtfs.FeedEntity{Id: proto.String(id), TripUpdate: tu}
}

func marshalFeed(t *testing.T, entities ...*gtfs.FeedEntity) []byte {
	t.Helper()
	b, err := proto.Marshal(&gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("1.0")},
		Entity: entities,
	})
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return b
}

// feedServer serves per-feed-id payloads and counts requests per feed id.
type feedServer struct {
	srv      *httptest.Server
	mu       sync.Mutex
	payloads map[string][]byte
	hits     map[string]int
	fail     map[string]bool
}

func newFeedServer(t *testing.T) *feedServer {
	fs := &feedServer{
		payloads: map[string][]byte{},
		hits:     map[string]int{},
		fail:     map[string]bool{},
	}
	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feedID := r.URL.Query().Get("feed_id")
		fs.mu.Lock()
		fs.hits[feedID]++
		failing := fs.fail[feedID]
		payload := fs.payloads[feedID]
		fs.mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(payload)
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *feedServer) hitsFor(feedID string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[feedID]
}

func newTestClient(t *testing.T, fs *feedServer) *Client {
	t.Helper()
	client, err := NewWithIndex(Config{
		APIKey:  "test-key",
		BaseURL: fs.srv.URL + "/?key=%s&feed_id=%d",
	}, testIndex())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestDeparturesSingleComplex(t *testing.T) {
	now := time.Now().Unix()
	fs := newFeedServer(t)
	// Feed 1 carries lines 1 and 4, feed 51 carries line 7.
	fs.payloads["1"] = marshalFeed(t,
		tripEntity("a", "1", map[string]int64{"127N": now + 300, "127S": now + 120}),
	)
	fs.payloads["51"] = marshalFeed(t,
		tripEntity("b", "7", map[string]int64{"725N": now + 60, "723N": now + 240}),
	)

	client := newTestClient(t, fs)
	resp, err := client.Departures(context.Background(), 611)
	if err != nil {
		t.Fatalf("Departures failed: %v", err)
	}

	if resp.ComplexID != 611 || resp.Name != "Times Sq-42 St" {
		t.Errorf("Wrong response identity: %d %s", resp.ComplexID, resp.Name)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(resp.Lines))
	}
	for _, line := range resp.Lines {
		for _, d := range append(line.Departures.North, line.Departures.South...) {
			if d.Time < now {
				t.Errorf("Departure before now: %d < %d", d.Time, now)
			}
		}
	}
}

func TestDeparturesDedupesSharedFeeds(t *testing.T) {
	now := time.Now().Unix()
	fs := newFeedServer(t)
	fs.payloads["1"] = marshalFeed(t,
		tripEntity("a", "1", map[string]int64{"127N": now + 60}),
		tripEntity("b", "4", map[string]int64{"631S": now + 90}),
	)
	fs.payloads["51"] = marshalFeed(t,
		tripEntity("c", "7", map[string]int64{"725N": now + 120}),
	)

	client := newTestClient(t, fs)
	// Lines 1 and 4 share feed 1; the union across both complexes must
	// still produce one fetch per distinct URL.
	responses, err := client.DeparturesAll(context.Background(), []int{611, 610})
	if err != nil {
		t.Fatalf("DeparturesAll failed: %v", err)
	}

	if got := fs.hitsFor("1"); got != 1 {
		t.Errorf("Expected 1 fetch of feed 1, got %d", got)
	}
	if got := fs.hitsFor("51"); got != 1 {
		t.Errorf("Expected 1 fetch of feed 51, got %d", got)
	}

	if len(responses) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(responses))
	}
	if responses[0].ComplexID != 611 || responses[1].ComplexID != 610 {
		t.Errorf("Responses not in input order: %d, %d",
			responses[0].ComplexID, responses[1].ComplexID)
	}
}

func TestDeparturesCachedAcrossCalls(t *testing.T) {
	now := time.Now().Unix()
	fs := newFeedServer(t)
	fs.payloads["1"] = marshalFeed(t,
		tripEntity("a", "1", map[string]int64{"127N": now + 60}),
	)
	fs.payloads["51"] = marshalFeed(t)

	client := newTestClient(t, fs)
	for i := 0; i < 3; i++ {
		if _, err := client.Departures(context.Background(), 611); err != nil {
			t.Fatalf("Call %d failed: %v", i, err)
		}
	}

	if got := fs.hitsFor("1"); got != 1 {
		t.Errorf("Expected 1 fetch of feed 1 across calls within the window, got %d", got)
	}
}

func TestDeparturesSorted(t *testing.T) {
	now := time.Now().Unix()
	fs := newFeedServer(t)
	fs.payloads["1"] = marshalFeed(t,
		tripEntity("a", "1", map[string]int64{"127N": now + 600}),
		tripEntity("b", "1", map[string]int64{"127N": now + 60}),
		tripEntity("c", "1", map[string]int64{"127N": now + 300}),
	)
	fs.payloads["51"] = marshalFeed(t)

	client := newTestClient(t, fs)
	resp, err := client.Departures(context.Background(), 611)
	if err != nil {
		t.Fatalf("Departures failed: %v", err)
	}

	north := resp.Lines[0].Departures.North
	if len(north) != 3 {
		t.Fatalf("Expected 3 departures, got %d", len(north))
	}
	for i := 1; i < len(north); i++ {
		if north[i-1].Time > north[i].Time {
			t.Errorf("Departures not ascending at %d: %d > %d",
				i, north[i-1].Time, north[i].Time)
		}
	}
}

func TestDeparturesFetchFailureAborts(t *testing.T) {
	now := time.Now().Unix()
	fs := newFeedServer(t)
	fs.payloads["1"] = marshalFeed(t,
		tripEntity("a", "1", map[string]int64{"127N": now + 60}),
	)
	fs.fail["51"] = true

	client := newTestClient(t, fs)
	if _, err := client.Departures(context.Background(), 611); err == nil {
		t.Error("Expected the whole request to fail when one feed fails")
	}
}

func TestDeparturesUnknownComplex(t *testing.T) {
	fs := newFeedServer(t)
	client := newTestClient(t, fs)

	_, err := client.Departures(context.Background(), 999)
	if err == nil {
		t.Fatal("Expected error for unknown complex")
	}

	// No network access should happen for a bad request.
	if got := fs.hitsFor("1"); got != 0 {
		t.Errorf("Expected no fetches, got %d", got)
	}
}

func TestDeparturesAllEmpty(t *testing.T) {
	fs := newFeedServer(t)
	client := newTestClient(t, fs)

	if _, err := client.DeparturesAll(context.Background(), nil); err == nil {
		t.Error("Expected error for empty id list")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := NewWithIndex(Config{}, testIndex()); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestComplexes(t *testing.T) {
	fs := newFeedServer(t)
	client := newTestClient(t, fs)

	all := client.Complexes()
	if len(all) != 2 {
		t.Fatalf("Expected 2 complexes, got %d", len(all))
	}
	if all[0].ID != 610 || all[1].ID != 611 {
		t.Errorf("Complexes not ordered by id: %d, %d", all[0].ID, all[1].ID)
	}
}
