package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map-service/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-map-service/internal/adapter/plates"
	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Plate boundaries switch on the extended variant (PLATES_ENABLED).
	var boundaries []domain.BoundaryFeature
	if cfg.PlatesEnabled {
		boundaries, err = plates.Load(cfg.PlatesPath)
		if err != nil {
			logger.Error("failed to load plate boundaries", "error", err, "path", cfg.PlatesPath)
			os.Exit(1)
		}
		logger.Info("plate boundaries loaded", "features", len(boundaries), "path", cfg.PlatesPath)
	}
	extended := boundaries != nil

	opts := pipeline.Options{
		Boundaries: boundaries,
		Location:   cfg.DisplayLocation,
	}

	// Base layer tiles (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger)
		layers, ok := mapbox.ResolveBaseLayers(ctx, client, extended, logger)
		opts.BaseLayers = layers
		if ok {
			metrics.MapboxTilesEnabled.Set(1)
			logger.Info("mapbox base layers enabled", "layers", len(layers))
		}
	} else {
		logger.Info("mapbox base layers disabled")
	}

	// Marker publishing (feature-flagged via KAFKA_ENABLED).
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts.Publisher = writer
		logger.Info("marker publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaMarkerTopic)
	}

	feed := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, metrics, logger)
	p := pipeline.New(feed, opts, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
