// Package pipeline runs the render cycle: fetch the feed, derive the viewport
// and marker styles, build the legend, and assemble the map view.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/render"
)

// FeedSource returns one decoded feed document per call.
type FeedSource interface {
	FetchEvents(ctx context.Context) (domain.Document, error)
}

// MarkerPublisher receives the styled markers of each successful render.
type MarkerPublisher interface {
	PublishMarkers(ctx context.Context, renderedAt time.Time, markers []domain.MarkerSpec) error
}

// Options selects the map variant. A non-nil Boundaries slice switches on the
// extended variant: plate overlay, topographic base layer, titled legend.
type Options struct {
	Boundaries []domain.BoundaryFeature
	BaseLayers []render.BaseLayer // defaults to render.DefaultBaseLayers
	Location   *time.Location     // popup time zone; nil means time.Local
	Publisher  MarkerPublisher    // optional
}

// Pipeline orchestrates one render per call to Render.
type Pipeline struct {
	source     FeedSource
	boundaries []domain.BoundaryFeature
	baseLayers []render.BaseLayer
	extended   bool
	location   *time.Location
	publisher  MarkerPublisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Pipeline over the given feed source.
func New(source FeedSource, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	extended := opts.Boundaries != nil
	baseLayers := opts.BaseLayers
	if len(baseLayers) == 0 {
		baseLayers = render.DefaultBaseLayers(extended)
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	metrics.PlatesLoaded.Set(float64(len(opts.Boundaries)))

	return &Pipeline{
		source:     source,
		boundaries: opts.Boundaries,
		baseLayers: baseLayers,
		extended:   extended,
		location:   loc,
		publisher:  opts.Publisher,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once a render has succeeded, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no map view has been rendered yet")
	}
	return nil
}

// Render runs one fetch-and-assemble cycle. Fetch and decode failures are
// returned unchanged; no partial view is produced.
func (p *Pipeline) Render(ctx context.Context) (render.View, error) {
	start := time.Now()

	view, err := p.render(ctx)
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.Renders.WithLabelValues("error").Inc()
		p.logger.Error("render failed", "error", err)
		return render.View{}, err
	}

	markers := view.Markers()
	p.metrics.Renders.WithLabelValues("success").Inc()
	p.metrics.EventsRendered.Add(float64(len(markers)))
	p.metrics.LastRenderEvents.Set(float64(len(markers)))
	p.ready.Store(true)

	p.logger.Info("map rendered",
		"events", len(markers),
		"plates", len(p.boundaries),
		"duration", time.Since(start),
	)

	p.publish(ctx, view.GeneratedAt, markers)
	return view, nil
}

func (p *Pipeline) render(ctx context.Context) (render.View, error) {
	doc, err := p.source.FetchEvents(ctx)
	if err != nil {
		return render.View{}, err
	}

	loc := p.location
	return render.Assemble(render.Input{
		Viewport: domain.ComputeViewport(doc.BBox),
		Events:   doc.Features,
		Style: func(f domain.EventFeature) domain.MarkerSpec {
			return domain.StyleFeature(f, loc)
		},
		Boundaries:  p.boundaries,
		Legend:      domain.BuildLegend(p.extended),
		BaseLayers:  p.baseLayers,
		GeneratedAt: domain.Now(),
	})
}

// publish hands markers to the optional publisher. Failures are logged and
// counted; the render itself has already succeeded.
func (p *Pipeline) publish(ctx context.Context, renderedAt time.Time, markers []domain.MarkerSpec) {
	if p.publisher == nil || len(markers) == 0 {
		return
	}
	if err := p.publisher.PublishMarkers(ctx, renderedAt, markers); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish markers failed", "error", err, "markers", len(markers))
		return
	}
	p.metrics.MarkersPublished.Add(float64(len(markers)))
}
