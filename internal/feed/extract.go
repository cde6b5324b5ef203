package feed

import (
	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/jusunglee/mta-departures/internal/models"
	"github.com/jusunglee/mta-departures/internal/nyct"
	"github.com/jusunglee/mta-departures/internal/static"
)

// Extract walks decoded feeds and accumulates departures belonging to one
// complex into resp. Feeds are shared across lines, so stop-time updates
// owned by other complexes are filtered here rather than by picking feeds
// upstream. Departures earlier than now are dropped. Buckets are left
// unsorted; the caller sorts once extraction is complete.
func Extract(feeds []*gtfs.FeedMessage, complexID int, resp *models.ComplexResponse, index *static.Index, now int64) {
	for _, msg := range feeds {
		for _, entity := range msg.GetEntity() {
			tu := entity.GetTripUpdate()
			if tu == nil || tu.Trip == nil {
				continue // heartbeat or non-trip entity
			}

			route := tu.GetTrip().GetRouteId()
			dest, _ := static.DestinationComplex(nyct.DestinationCode(nyct.TrainID(tu.Trip)))

			for _, stu := range tu.GetStopTimeUpdate() {
				if stu.GetDeparture() == nil || stu.GetDeparture().Time == nil {
					continue
				}
				stopID, direction := nyct.SplitStopID(stu.GetStopId())
				owner, ok := index.ComplexForStop(stopID)
				if !ok || owner != complexID {
					continue
				}
				t := stu.GetDeparture().GetTime()
				if t < now {
					continue // already departed
				}
				station, ok := index.StationForStop(stopID)
				if !ok {
					continue
				}
				resp.Line(station.Line).Add(direction, models.Departure{
					Route:       route,
					Time:        t,
					Destination: dest,
				})
			}
		}
	}
}
