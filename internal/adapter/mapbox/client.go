// Package mapbox serves base map tiles from Mapbox styles when a token is configured.
package mapbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/render"
)

// Mapbox styles backing the two base layers.
const (
	StreetsStyle  = "streets-v12"
	OutdoorsStyle = "outdoors-v12"
)

const attribution = `&copy; <a href="https://www.mapbox.com/about/maps/">Mapbox</a> ` +
	`&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a>`

// Client provides Mapbox raster tile layers and checks that the configured
// token can reach them.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Mapbox styles client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/styles/v1/mapbox",
		logger:  logger,
	}
}

// CheckStyle fetches the style document to confirm the token is accepted.
func (c *Client) CheckStyle(ctx context.Context, style string) error {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(style), url.Values{"access_token": {c.token}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("style %s request: %w", style, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("mapbox style reachable", "style", style)
	return nil
}

// BaseLayers returns Mapbox-backed replacements for the default base layers,
// keeping the same display names.
func (c *Client) BaseLayers(extended bool) []render.BaseLayer {
	layers := []render.BaseLayer{c.layer(render.CountriesMapName, StreetsStyle)}
	if extended {
		layers = append(layers, c.layer(render.TopographicMapName, OutdoorsStyle))
	}
	return layers
}

func (c *Client) layer(name, style string) render.BaseLayer {
	return render.BaseLayer{
		Name:        name,
		URLTemplate: fmt.Sprintf("%s/%s/tiles/256/{z}/{x}/{y}?access_token=%s", c.baseURL, style, url.QueryEscape(c.token)),
		Attribution: attribution,
	}
}

// ResolveBaseLayers checks every style the variant needs and returns Mapbox
// layers on success. Any failure falls back to the default tile providers.
func ResolveBaseLayers(ctx context.Context, c *Client, extended bool, logger *slog.Logger) ([]render.BaseLayer, bool) {
	styles := []string{StreetsStyle}
	if extended {
		styles = append(styles, OutdoorsStyle)
	}
	for _, style := range styles {
		if err := c.CheckStyle(ctx, style); err != nil {
			logger.Warn("mapbox tiles unavailable, using default base layers", "style", style, "error", err)
			return render.DefaultBaseLayers(extended), false
		}
	}
	return c.BaseLayers(extended), true
}
