package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "testdata/all_week_sample.geojson"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(feedURL string) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     discardLogger(),
	}
}

func serveFile(t *testing.T, path string) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchEvents_Success(t *testing.T) {
	srv := serveFile(t, samplePath)
	c := testClient(srv.URL)

	doc, err := c.FetchEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.BoundingBox{
		MinLon: -178.2011, MinLat: -17.9273, MinDepth: 2.41,
		MaxLon: -122.7635, MaxLat: 38.8221, MaxDepth: 560.3,
		HasDepth: true,
	}, doc.BBox)

	require.Len(t, doc.Features, 2)
	assert.Equal(t, domain.EventFeature{
		ID:        "nc73981234",
		Place:     "3 km W of Cobb, CA",
		Magnitude: 1.2,
		DepthKm:   2.41,
		TimeMs:    1713280000000,
		Longitude: -122.7635,
		Latitude:  38.8221,
	}, doc.Features[0])
	assert.Equal(t, "Fiji region", doc.Features[1].Place)

	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FeedFetches.WithLabelValues("success")), 0)
}

func TestClient_FetchEvents_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream maintenance"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchEvents(context.Background())

	require.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.Contains(t, err.Error(), "503")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FeedFetches.WithLabelValues("fetch_error")), 0)
}

func TestClient_FetchEvents_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := testClient(url).FetchEvents(context.Background())

	require.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestClient_FetchEvents_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.FetchEvents(context.Background())
	require.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestClient_FetchEvents_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchEvents(context.Background())

	require.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.FeedFetches.WithLabelValues("malformed")), 0)
}

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing bbox",
			body:    `{"features":[]}`,
			wantErr: "bbox has 0 values",
		},
		{
			name:    "missing mag",
			body:    `{"bbox":[0,0,1,1],"features":[{"id":"a","properties":{"place":"x","time":1},"geometry":{"coordinates":[0,0,1]}}]}`,
			wantErr: "missing mag",
		},
		{
			name:    "null mag",
			body:    `{"bbox":[0,0,1,1],"features":[{"id":"a","properties":{"place":"x","mag":null,"time":1},"geometry":{"coordinates":[0,0,1]}}]}`,
			wantErr: "missing mag",
		},
		{
			name:    "missing time",
			body:    `{"bbox":[0,0,1,1],"features":[{"id":"a","properties":{"place":"x","mag":1},"geometry":{"coordinates":[0,0,1]}}]}`,
			wantErr: "missing time",
		},
		{
			name:    "two coordinates",
			body:    `{"bbox":[0,0,1,1],"features":[{"id":"a","properties":{"place":"x","mag":1,"time":1},"geometry":{"coordinates":[0,0]}}]}`,
			wantErr: "geometry",
		},
		{
			name:    "no geometry",
			body:    `{"bbox":[0,0,1,1],"features":[{"id":"a","properties":{"place":"x","mag":1,"time":1}}]}`,
			wantErr: "geometry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(tt.body))
			require.ErrorIs(t, err, domain.ErrMalformedDocument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeDocument_NullPlace(t *testing.T) {
	body := `{"bbox":[-1,-2,3,4],"features":[{"id":"a","properties":{"place":null,"mag":-0.4,"time":5},"geometry":{"coordinates":[1,2,-3.5]}}]}`

	doc, err := DecodeDocument(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, doc.Features, 1)
	assert.Empty(t, doc.Features[0].Place)
	assert.InDelta(t, -0.4, doc.Features[0].Magnitude, 1e-9)
	assert.InDelta(t, -3.5, doc.Features[0].DepthKm, 1e-9)
	assert.False(t, doc.BBox.HasDepth)
}

func TestFileSource(t *testing.T) {
	doc, err := FileSource{Path: samplePath}.FetchEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Features, 2)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.geojson")}.FetchEvents(context.Background())
	require.ErrorIs(t, err, domain.ErrFetchFailure)
}
