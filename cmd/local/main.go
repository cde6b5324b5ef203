package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jusunglee/mta-departures/internal/models"
	"github.com/jusunglee/mta-departures/pkg/mta"
)

func main() {
	var (
		apiKey        = flag.String("api-key", "", "MTA API key")
		complexIDs    = flag.String("complexes", "611", "Comma-separated complex ids")
		complexesFile = flag.String("complexes-file", "data/complexes.json", "Station complexes JSON file")
		stationsFile  = flag.String("stations-file", "data/stations.json", "Stations JSON file")
	)
	flag.Parse()

	// Fallback to environment variable if API key not provided via flag
	if *apiKey == "" {
		*apiKey = os.Getenv("MTA_API_KEY")
	}
	if *apiKey == "" {
		slog.Error("MTA API key required (use -api-key flag or MTA_API_KEY env var)")
		os.Exit(1)
	}

	ids, err := parseIDs(*complexIDs)
	if err != nil {
		slog.Error("Invalid complex ids", "error", err)
		os.Exit(1)
	}

	cfg := mta.DefaultConfig()
	cfg.APIKey = *apiKey
	cfg.ComplexesFile = *complexesFile
	cfg.StationsFile = *stationsFile

	client, err := mta.New(cfg)
	if err != nil {
		slog.Error("Failed to create MTA client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	responses, err := client.DeparturesAll(ctx, ids)
	if err != nil {
		slog.Error("Failed to get departures", "error", err)
		os.Exit(1)
	}

	for _, resp := range responses {
		fmt.Printf("\n%s (%d)\n", resp.Name, resp.ComplexID)
		if len(resp.Lines) == 0 {
			fmt.Println("  No upcoming departures")
			continue
		}
		for _, line := range resp.Lines {
			fmt.Printf("  %s\n", line.Name)
			printDirection("Northbound", line.Departures.North)
			printDirection("Southbound", line.Departures.South)
		}
	}
}

func printDirection(label string, deps []models.Departure) {
	if len(deps) == 0 {
		return
	}
	fmt.Printf("    %s:\n", label)
	for _, d := range deps[:min(3, len(deps))] {
		fmt.Printf("      %s - %s\n", d.Route, time.Unix(d.Time, 0).Format("3:04 PM"))
	}
}

func parseIDs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid complex id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
