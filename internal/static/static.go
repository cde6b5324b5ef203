// Package static holds the read-only reference datasets: station complexes,
// stations, and the destination-code table. Everything here is built once at
// startup and never mutated, so it is safe to share across goroutines.
package static

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Complex is a station complex from the static reference dataset
type Complex struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	DaytimeRoutes []string `json:"daytime_routes"`
}

// Station is a single GTFS stop from the static reference dataset.
// Line carries the trunk-line name departures are grouped under.
type Station struct {
	StopID    string `json:"gtfs_stop_id"`
	Line      string `json:"line"`
	ComplexID int    `json:"complex_id"`
}

// Index provides the lookup tables built from the static datasets
type Index struct {
	complexes   map[int]Complex
	stopComplex map[string]int
	stations    map[string]Station
}

// Load reads the complex and station datasets from JSON files and builds
// the index.
func Load(complexesPath, stationsPath string) (*Index, error) {
	var complexes []Complex
	if err := readJSON(complexesPath, &complexes); err != nil {
		return nil, fmt.Errorf("load complexes: %w", err)
	}
	var stations []Station
	if err := readJSON(stationsPath, &stations); err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	return NewIndex(complexes, stations), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// NewIndex builds the lookup tables from already-loaded datasets
func NewIndex(complexes []Complex, stations []Station) *Index {
	ix := &Index{
		complexes:   make(map[int]Complex, len(complexes)),
		stopComplex: make(map[string]int, len(stations)),
		stations:    make(map[string]Station, len(stations)),
	}
	for _, c := range complexes {
		ix.complexes[c.ID] = c
	}
	for _, s := range stations {
		ix.stopComplex[s.StopID] = s.ComplexID
		ix.stations[s.StopID] = s
	}
	return ix
}

// Complex returns the complex record for an id
func (ix *Index) Complex(id int) (Complex, bool) {
	c, ok := ix.complexes[id]
	return c, ok
}

// Complexes returns all known complexes, ordered by id
func (ix *Index) Complexes() []Complex {
	out := make([]Complex, 0, len(ix.complexes))
	for _, c := range ix.complexes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ComplexForStop returns the id of the complex owning a GTFS stop
func (ix *Index) ComplexForStop(stopID string) (int, bool) {
	id, ok := ix.stopComplex[stopID]
	return id, ok
}

// StationForStop returns the station record for a GTFS stop
func (ix *Index) StationForStop(stopID string) (Station, bool) {
	s, ok := ix.stations[stopID]
	return s, ok
}
