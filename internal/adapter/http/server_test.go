package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockRenderer struct {
	view render.View
	err  error
}

func (m *mockRenderer) Render(_ context.Context) (render.View, error) { return m.view, m.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleView(t *testing.T) render.View {
	t.Helper()
	event := domain.EventFeature{
		ID: "us2", Place: "45 km SSW of Hualien City, Taiwan",
		Magnitude: 5.1, DepthKm: 35.2, TimeMs: 1714136400000, Longitude: 121.4, Latitude: 23.6,
	}
	view, err := render.Assemble(render.Input{
		Viewport: domain.ComputeViewport(domain.BoundingBox{MinLon: 121.4, MinLat: 23.6, MaxLon: 121.4, MaxLat: 23.6}),
		Events:   []domain.EventFeature{event},
		Style: func(f domain.EventFeature) domain.MarkerSpec {
			return domain.StyleFeature(f, time.UTC)
		},
		Legend:      domain.BuildLegend(false),
		BaseLayers:  render.DefaultBaseLayers(false),
		GeneratedAt: time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return view
}

func newTestServer(renderer httpadapter.Renderer, readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", renderer, &mockReadiness{err: readyErr}, discardLogger())
}

func serve(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMapPageReturnsHTML(t *testing.T) {
	srv := newTestServer(&mockRenderer{view: sampleView(t)}, nil)

	rec := serve(srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, render.PageTitle, doc.Find("title").Text())
	assert.Equal(t, 6, doc.Find("#legend li").Length())
}

func TestViewEndpointReturnsJSON(t *testing.T) {
	want := sampleView(t)
	srv := newTestServer(&mockRenderer{view: want}, nil)

	rec := serve(srv, "/api/view")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got render.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Markers(), 1)
	assert.Equal(t, "us2", got.Markers()[0].EventID)
	assert.Equal(t, want.FitBounds, got.FitBounds)
	assert.Equal(t, render.CountriesMapName, got.ActiveBase)
}

func TestRenderErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"fetch failure", fmt.Errorf("%w: status 503", domain.ErrFetchFailure), http.StatusBadGateway},
		{"malformed document", fmt.Errorf("%w: missing bbox", domain.ErrMalformedDocument), http.StatusBadGateway},
		{"other", errors.New("assemble view: at least one base layer is required"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		for _, path := range []string{"/", "/api/view"} {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				srv := newTestServer(&mockRenderer{err: tt.err}, nil)

				rec := serve(srv, path)

				assert.Equal(t, tt.status, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
				assert.Equal(t, tt.err.Error(), body["detail"])
			})
		}
	}
}

func TestUnknownPathReturns404(t *testing.T) {
	srv := newTestServer(&mockRenderer{view: sampleView(t)}, nil)

	assert.Equal(t, http.StatusNotFound, serve(srv, "/nope").Code)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockRenderer{}, nil)

	assert.Equal(t, http.StatusOK, serve(srv, "/healthz").Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockRenderer{}, nil)

	assert.Equal(t, http.StatusOK, serve(srv, "/readyz").Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockRenderer{}, errors.New("no map view has been rendered yet"))

	assert.Equal(t, http.StatusServiceUnavailable, serve(srv, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockRenderer{}, nil)

	rec := serve(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
