// Package mta exposes real-time subway departures for station complexes.
// A Client polls the provider's GTFS-RT feeds through a short-lived cache
// and projects them onto per-line, per-direction departure boards.
package mta

import (
	"context"
	"errors"
	"fmt"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/mta-departures/internal/feed"
	"github.com/jusunglee/mta-departures/internal/models"
	"github.com/jusunglee/mta-departures/internal/static"
)

// ErrUnknownComplex is returned when a requested complex id is not in the
// static dataset.
var ErrUnknownComplex = errors.New("unknown complex")

// Config holds configuration for the departures client
// APIKey required for accessing MTA's GTFS-RT feeds
type Config struct {
	APIKey        string
	BaseURL       string // feed endpoint; defaults to the MTA datamine URL
	ComplexesFile string
	StationsFile  string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:       feed.DefaultBaseURL,
		ComplexesFile: "data/complexes.json",
		StationsFile:  "data/stations.json",
	}
}

// Client answers departure queries for station complexes
type Client struct {
	apiKey  string
	baseURL string
	index   *static.Index
	cache   *feed.Cache
}

// New builds a client from an API key and the static reference datasets
func New(cfg Config) (*Client, error) {
	index, err := static.Load(cfg.ComplexesFile, cfg.StationsFile)
	if err != nil {
		return nil, err
	}
	return NewWithIndex(cfg, index)
}

// NewWithIndex builds a client around an already-built station index
func NewWithIndex(cfg Config, index *static.Index) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("MTA API key required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = feed.DefaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		index:   index,
		cache:   feed.NewCache(),
	}, nil
}

// Complexes lists the complexes known to the client
func (c *Client) Complexes() []static.Complex {
	return c.index.Complexes()
}

// Departures returns upcoming departures for a single complex
func (c *Client) Departures(ctx context.Context, complexID int) (*models.ComplexResponse, error) {
	all, err := c.DeparturesAll(ctx, []int{complexID})
	if err != nil {
		return nil, err
	}
	return &all[0], nil
}

// DeparturesAll returns upcoming departures for several complexes, in input
// order. Every required feed is fetched before any extraction starts; one
// fetch or decode failure fails the whole request.
func (c *Client) DeparturesAll(ctx context.Context, complexIDs []int) ([]models.ComplexResponse, error) {
	if len(complexIDs) == 0 {
		return nil, fmt.Errorf("at least one complex id required")
	}

	// Union the daytime routes of every requested complex.
	lines := make(map[string]struct{})
	for _, id := range complexIDs {
		cx, ok := c.index.Complex(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownComplex, id)
		}
		for _, route := range cx.DaytimeRoutes {
			lines[route] = struct{}{}
		}
	}

	// Resolve lines to feed URLs, deduplicated before any network access.
	urlSet := make(map[string]struct{})
	urls := make([]string, 0, len(lines))
	for line := range lines {
		u, err := feed.URLFor(c.baseURL, c.apiKey, line)
		if err != nil {
			return nil, err
		}
		if _, ok := urlSet[u]; ok {
			continue
		}
		urlSet[u] = struct{}{}
		urls = append(urls, u)
	}

	feeds := make([]*gtfs.FeedMessage, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			msg, err := c.cache.Get(ctx, u)
			if err != nil {
				return err
			}
			feeds[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	responses := make([]models.ComplexResponse, 0, len(complexIDs))
	for _, id := range complexIDs {
		cx, _ := c.index.Complex(id)
		resp := models.NewComplexResponse(id, cx.Name)
		feed.Extract(feeds, id, resp, c.index, now)
		resp.SortDepartures()
		responses = append(responses, *resp)
	}
	return responses, nil
}
