// Package nyct parses the NYCT-specific pieces of MTA GTFS-RT feeds: the
// train id carried on the trip descriptor extension, the destination code
// embedded in that id, and the direction suffix on stop ids.
package nyct

import (
	"strings"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from nyct-subway.proto: the NyctTripDescriptor extension on
// TripDescriptor, and train_id inside it.
const (
	nyctTripDescriptorField = protowire.Number(1001)
	trainIDField            = protowire.Number(1)
)

// TrainID returns the NYCT train id from a trip descriptor, or "" when the
// extension is absent. The bindings do not compile the NYCT extension proto,
// so the descriptor retains it among its unknown fields and it is read back
// with protowire.
func TrainID(td *gtfs.TripDescriptor) string {
	if td == nil {
		return ""
	}
	ext := fieldBytes(td.ProtoReflect().GetUnknown(), nyctTripDescriptorField)
	if ext == nil {
		return ""
	}
	if id := fieldBytes(ext, trainIDField); id != nil {
		return string(id)
	}
	return ""
}

// fieldBytes scans a wire-format buffer for the first length-delimited
// occurrence of the given field number.
func fieldBytes(b []byte, field protowire.Number) []byte {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil
		}
		b = b[n:]
		if num == field && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil
			}
			return v
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil
		}
		b = b[n:]
	}
	return nil
}

// DestinationCode returns the destination location code encoded in a train
// id. The id is space-delimited and its last token is an origin/destination
// pair joined by "/"; the code is the second component. Returns "" when the
// id does not carry one.
func DestinationCode(trainID string) string {
	fields := strings.Fields(trainID)
	if len(fields) == 0 {
		return ""
	}
	parts := strings.Split(fields[len(fields)-1], "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// SplitStopID splits a feed stop id into the GTFS stop id and the trailing
// direction character ("N" or "S").
func SplitStopID(stopID string) (gtfsStopID, direction string) {
	if len(stopID) < 2 {
		return stopID, ""
	}
	return stopID[:len(stopID)-1], stopID[len(stopID)-1:]
}
