package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// FreshFor is how long a decoded feed stays usable after it was fetched.
const FreshFor = 20 * time.Second

// cacheSlots bounds the cache; the MTA publishes well under 16 distinct feeds
const cacheSlots = 16

// Cache memoizes decoded feeds per URL. A fresh entry is returned without
// network or decode work; an expired entry is replaced whole on the next
// read. Concurrent callers for one URL attach to a single in-flight fetch
// instead of each fetching and decoding.
type Cache struct {
	client *http.Client
	feeds  gcache.Cache
	group  singleflight.Group
}

// NewCache creates a feed cache with the standard freshness window
func NewCache() *Cache {
	return newCache(FreshFor)
}

func newCache(ttl time.Duration) *Cache {
	return &Cache{
		client: &http.Client{Timeout: 30 * time.Second},
		feeds:  gcache.New(cacheSlots).LRU().Expiration(ttl).Build(),
	}
}

// Get returns the decoded feed for a URL, fetching and decoding only when no
// fresh entry exists. Staleness is evaluated at read time; gcache drops
// expired entries lazily on lookup.
func (c *Cache) Get(ctx context.Context, url string) (*gtfs.FeedMessage, error) {
	if v, err := c.feeds.Get(url); err == nil {
		return v.(*gtfs.FeedMessage), nil
	}
	v, err, _ := c.group.Do(url, func() (interface{}, error) {
		// A flight that finished while we waited may have filled the slot.
		if v, err := c.feeds.Get(url); err == nil {
			return v, nil
		}
		raw, err := c.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		msg, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		_ = c.feeds.Set(url, msg)
		return msg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gtfs.FeedMessage), nil
}

func (c *Cache) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
