package feed

import (
	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"github.com/jusunglee/mta-departures/internal/static"
)

// stopTime describes one stop-time update for test feeds. A zero departure
// means the departure event is absent entirely.
type stopTime struct {
	stopID    string
	departure int64
}

func stopTimeUpdates(stops []stopTime) []*gtfs.TripUpdate_StopTimeUpdate {
	out := make([]*gtfs.TripUpdate_StopTimeUpdate, 0, len(stops))
	for _, s := range stops {
		stu := &gtfs.TripUpdate_StopTimeUpdate{StopId: proto.String(s.stopID)}
		if s.departure != 0 {
			stu.Departure = &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(s.departure)}
		}
		out = append(out, stu)
	}
	return out
}

// tripEntity builds a feed entity with a trip update. An empty trainID
// leaves the NYCT extension off the descriptor.
func tripEntity(id, routeID, trainID string, stops ...stopTime) *gtfs.FeedEntity {
	td := &gtfs.TripDescriptor{RouteId: proto.String(routeID)}
	if trainID != "" {
		inner := protowire.AppendTag(nil, 1, protowire.BytesType)
		inner = protowire.AppendString(inner, trainID)
		ext := protowire.AppendTag(nil, 1001, protowire.BytesType)
		ext = protowire.AppendBytes(ext, inner)
		td.ProtoReflect().SetUnknown(ext)
	}
	return &gtfs.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfs.TripUpdate{
			Trip:           td,
			StopTimeUpdate: stopTimeUpdates(stops),
		},
	}
}

// heartbeatEntity builds a feed entity without a trip update
func heartbeatEntity(id string) *gtfs.FeedEntity {
	return &gtfs.FeedEntity{Id: proto.String(id)}
}

func feedMessage(entities ...*gtfs.FeedEntity) *gtfs.FeedMessage {
	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("1.0")},
		Entity: entities,
	}
}

func marshalFeed(msg *gtfs.FeedMessage) []byte {
	b, err := proto.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return b
}

// testIndex covers two complexes sharing the Flushing line, matching the
// shape of the real datasets.
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
