package domain

import (
	"encoding/json"
	"time"
)

// EventFeature is a single earthquake taken verbatim from the feed.
type EventFeature struct {
	ID        string  `json:"id,omitempty"` // USGS event ID, e.g. "ci40567432"
	Place     string  `json:"place"`
	Magnitude float64 `json:"mag"`
	DepthKm   float64 `json:"depth_km"`
	TimeMs    int64   `json:"time"` // epoch milliseconds, UTC
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
}

// Time returns the event origin time.
func (f EventFeature) Time() time.Time {
	return time.UnixMilli(f.TimeMs)
}

// Position returns the event epicentre as a map point.
func (f EventFeature) Position() LatLng {
	return LatLng{Lat: f.Latitude, Lng: f.Longitude}
}

// BoundaryFeature is a tectonic plate boundary segment. Its geometry is kept
// as raw GeoJSON because nothing styles on it.
type BoundaryFeature struct {
	GeometryType string          `json:"-"`
	Geometry     json.RawMessage `json:"geometry"`
}

// BoundingBox is the geographic extent of all events in one feed response.
type BoundingBox struct {
	MinLon   float64
	MinLat   float64
	MaxLon   float64
	MaxLat   float64
	MinDepth float64
	MaxDepth float64
	HasDepth bool
}

// Document is one decoded feed response.
type Document struct {
	BBox     BoundingBox
	Features []EventFeature
}

// LatLng is a WGS-84 point in map order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is the rectangle the map camera is fit to on first render.
type Viewport struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

// MarkerStyle holds circle marker options. Field names match the option keys
// the browser-side map library expects.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// MarkerSpec is the rendering spec for one event. It is derived per render
// and never stored.
type MarkerSpec struct {
	EventID   string      `json:"id,omitempty"`
	Position  LatLng      `json:"position"`
	Style     MarkerStyle `json:"style"`
	PopupHTML string      `json:"popupHtml"`
}
