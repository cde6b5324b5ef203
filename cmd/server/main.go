package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jusunglee/mta-departures/api/handlers"
	"github.com/jusunglee/mta-departures/internal/config"
	"github.com/jusunglee/mta-departures/pkg/mta"
)

func main() {
	var (
		port          = flag.String("port", "8080", "Server port")
		apiKey        = flag.String("api-key", "", "MTA API key")
		configFile    = flag.String("config", "", "YAML config file")
		complexesFile = flag.String("complexes-file", "data/complexes.json", "Station complexes JSON file")
		stationsFile  = flag.String("stations-file", "data/stations.json", "Stations JSON file")
	)
	flag.Parse()

	cfg := mta.DefaultConfig()
	cfg.ComplexesFile = *complexesFile
	cfg.StationsFile = *stationsFile

	// Config file values are overridden by flags and environment below
	if *configFile != "" {
		fileCfg, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg.APIKey = fileCfg.MTA.APIKey
		cfg.ComplexesFile = fileCfg.MTA.ComplexesFile
		cfg.StationsFile = fileCfg.MTA.StationsFile
		*port = strconv.Itoa(fileCfg.Server.Port)
	}

	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("MTA_API_KEY")
	}
	if cfg.APIKey == "" {
		log.Fatal("MTA API key required (use -api-key flag, config file, or MTA_API_KEY env var)")
	}

	client, err := mta.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create MTA client: %v", err)
	}

	// Create HTTP server
	r := mux.NewRouter()
	h := handlers.NewHandler(client)
	h.RegisterRoutes(r)

	// Add middleware
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
