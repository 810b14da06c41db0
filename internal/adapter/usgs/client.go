package usgs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// Client fetches the USGS GeoJSON summary feed. It implements the pipeline's
// feed source. There is no retry; a failed fetch fails the render.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client. A zero timeout leaves requests unbounded
// apart from the caller's context.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// FetchEvents issues one GET for the feed and decodes it. Transport and HTTP
// status errors wrap domain.ErrFetchFailure; decode and field errors wrap
// domain.ErrMalformedDocument.
func (c *Client) FetchEvents(ctx context.Context) (domain.Document, error) {
	start := time.Now()
	doc, err := c.fetch(ctx)
	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		c.metrics.FeedFetches.WithLabelValues("success").Inc()
		c.logger.Debug("feed fetched", "url", c.feedURL, "events", len(doc.Features), "duration", time.Since(start))
	case errors.Is(err, domain.ErrMalformedDocument):
		c.metrics.FeedFetches.WithLabelValues("malformed").Inc()
	default:
		c.metrics.FeedFetches.WithLabelValues("fetch_error").Inc()
	}
	return doc, err
}

func (c *Client) fetch(ctx context.Context) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: create request: %w", domain.ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Document{}, fmt.Errorf("%w: status %d: %s", domain.ErrFetchFailure, resp.StatusCode, body)
	}

	return DecodeDocument(resp.Body)
}

// FileSource reads a previously saved feed document from disk. It satisfies
// the same contract as Client for offline rendering.
type FileSource struct {
	Path string
}

// FetchEvents reads and decodes the file. A missing file wraps
// domain.ErrFetchFailure.
func (s FileSource) FetchEvents(_ context.Context) (domain.Document, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	defer f.Close()
	return DecodeDocument(f)
}
