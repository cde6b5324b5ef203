package feed

import (
	"fmt"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Decode unmarshals a raw feed payload into the GTFS-RT message set.
func Decode(b []byte) (*gtfs.FeedMessage, error) {
	var msg gtfs.FeedMessage
	if err := proto.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return &msg, nil
}
