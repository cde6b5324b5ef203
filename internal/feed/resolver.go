package feed

import "fmt"

// DefaultBaseURL is the MTA datamine endpoint, parameterized by API key and
// numeric feed id.
const DefaultBaseURL = "http://datamine.mta.info/mta_esi.php?key=%s&feed_id=%d"

// lineFeeds maps a line code to the numeric feed id covering it. Several
// lines share one feed.
var lineFeeds = map[string]int{
	"1": 1, "2": 1, "3": 1, "4": 1, "5": 1, "6": 1, "6X": 1, "S": 1, "GS": 1,
	"A": 26, "C": 26, "E": 26, "H": 26, "FS": 26,
	"N": 16, "Q": 16, "R": 16, "W": 16,
	"B": 21, "D": 21, "F": 21, "M": 21,
	"L":  2,
	"SI": 11,
	"G":  31,
	"J": 36, "Z": 36,
	"7": 51, "7X": 51,
}

// FeedID returns the feed id serving a line code.
func FeedID(line string) (int, error) {
	id, ok := lineFeeds[line]
	if !ok {
		return 0, fmt.Errorf("unknown line %q", line)
	}
	return id, nil
}

// URLFor builds the feed URL for a line. An unrecognized line code is an
// error rather than a URL carrying a bogus feed id.
func URLFor(baseURL, apiKey, line string) (string, error) {
	id, err := FeedID(line)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(baseURL, apiKey, id), nil
}
