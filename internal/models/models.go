package models

import "sort"

// Departure is one predicted departure extracted from a real-time feed.
// Destination is the complex id the train is headed to, 0 when the feed's
// destination code is not in the static table.
type Departure struct {
	Route       string `json:"route"`
	Time        int64  `json:"time"`
	Destination int    `json:"destination,omitempty"`
}

// DirectionDepartures groups departures by direction
type DirectionDepartures struct {
	North []Departure `json:"N"`
	South []Departure `json:"S"`
}

// LineDepartures holds the departures of one line serving a complex
type LineDepartures struct {
	Name       string              `json:"name"`
	Departures DirectionDepartures `json:"departures"`
}

// ComplexResponse is the departure board for one station complex.
// Lines appear in the order they were first seen during extraction.
type ComplexResponse struct {
	ComplexID int               `json:"complex_id"`
	Name      string            `json:"name"`
	Lines     []*LineDepartures `json:"lines"`
}

// NewComplexResponse creates an empty response for a complex
func NewComplexResponse(id int, name string) *ComplexResponse {
	return &ComplexResponse{ComplexID: id, Name: name, Lines: []*LineDepartures{}}
}

// Line returns the bucket for a line name, appending a new empty one if the
// response has none yet. Entry order is therefore first-seen order.
func (r *ComplexResponse) Line(name string) *LineDepartures {
	for _, l := range r.Lines {
		if l.Name == name {
			return l
		}
	}
	l := &LineDepartures{
		Name: name,
		Departures: DirectionDepartures{
			North: []Departure{},
			South: []Departure{},
		},
	}
	r.Lines = append(r.Lines, l)
	return l
}

// Add appends a departure to the bucket matching direction ("N" or "S").
// Other direction values are dropped.
func (l *LineDepartures) Add(direction string, d Departure) {
	switch direction {
	case "N":
		l.Departures.North = append(l.Departures.North, d)
	case "S":
		l.Departures.South = append(l.Departures.South, d)
	}
}

// SortDepartures orders every line's N and S buckets ascending by time.
// Buckets are unsorted until this runs at the end of extraction.
func (r *ComplexResponse) SortDepartures() {
	for _, l := range r.Lines {
		sortByTime(l.Departures.North)
		sortByTime(l.Departures.South)
	}
}

func sortByTime(deps []Departure) {
	sort.Slice(deps, func(i, j int) bool { return deps[i].Time < deps[j].Time })
}
