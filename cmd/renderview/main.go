// Command renderview runs a single render cycle and writes the result as the
// HTML map page or the assembled view JSON. It reads the live feed by default
// or a saved GeoJSON document with -feed-file.
//
// Usage:
//
//	go run ./cmd/renderview -format html -out quakes.html
//	go run ./cmd/renderview \
//	  -feed-file internal/adapter/usgs/testdata/all_week_sample.geojson \
//	  -plates data/PB2002_boundaries.json \
//	  -tz UTC -generated-at 2024-04-26T15:10:00Z -format json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/plates"
	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
	"github.com/couchcryptid/quake-map-service/internal/render"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	feedURL := flag.String("feed-url", config.DefaultFeedURL, "USGS GeoJSON summary feed URL")
	feedFile := flag.String("feed-file", "", "read a saved feed document instead of fetching")
	feedTimeout := flag.Duration("feed-timeout", 0, "feed request timeout (0 = none)")
	platesPath := flag.String("plates", "", "plate boundary GeoJSON; enables the extended variant")
	format := flag.String("format", "html", "output format: html or json")
	out := flag.String("out", "", "output file (default stdout)")
	tz := flag.String("tz", "", "IANA zone for popup times (default local)")
	generatedAt := flag.String("generated-at", "", "fixed RFC3339 render time for reproducible output")
	flag.Parse()

	if *format != "html" && *format != "json" {
		flag.Usage()
		return fmt.Errorf("unknown -format %q", *format)
	}

	loc := time.Local
	if *tz != "" {
		var err error
		if loc, err = time.LoadLocation(*tz); err != nil {
			return fmt.Errorf("invalid -tz: %w", err)
		}
	}

	if *generatedAt != "" {
		at, err := time.Parse(time.RFC3339, *generatedAt)
		if err != nil {
			return fmt.Errorf("invalid -generated-at: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetrics()

	var source pipeline.FeedSource = usgs.NewClient(*feedURL, *feedTimeout, metrics, logger)
	if *feedFile != "" {
		source = usgs.FileSource{Path: *feedFile}
	}

	opts := pipeline.Options{Location: loc}
	if *platesPath != "" {
		boundaries, err := plates.Load(*platesPath)
		if err != nil {
			return err
		}
		opts.Boundaries = boundaries
	}

	view, err := pipeline.New(source, opts, logger, metrics).Render(context.Background())
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if *format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return render.WriteHTML(w, view)
}
