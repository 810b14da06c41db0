// Package render assembles styled events, plate boundaries, base layers, and
// the depth legend into a single map view, and writes that view as an HTML
// page driven by the browser-side map library.
package render

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Overlay display names and kinds.
const (
	EventsOverlayName = "Earthquakes in the last week"
	PlatesOverlayName = "Tectonic plate boundaries"

	OverlayMarkers = "markers"
	OverlayGeoJSON = "geojson"

	// LegendPosition is the fixed screen corner for the legend control.
	LegendPosition = "bottomright"
)

// PlateStyle is the path style for plate boundary lines.
var PlateStyle = PathStyle{Color: "DarkMagenta", Weight: 1}

// StyleFunc derives a marker spec for one event.
type StyleFunc func(domain.EventFeature) domain.MarkerSpec

// BaseLayer is a selectable background tile layer.
type BaseLayer struct {
	Name        string `json:"name"`
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
}

// PathStyle holds line options for vector overlays.
type PathStyle struct {
	Color  string  `json:"color"`
	Weight float64 `json:"weight"`
}

// Overlay is an independently togglable data layer.
type Overlay struct {
	Name    string              `json:"name"`
	Kind    string              `json:"kind"`
	Visible bool                `json:"visible"`
	Markers []domain.MarkerSpec `json:"markers,omitempty"`
	GeoJSON *FeatureCollection  `json:"geojson,omitempty"`
	Style   *PathStyle          `json:"style,omitempty"`
}

// FeatureCollection is the GeoJSON handed to the map library for line overlays.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature with empty properties.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties struct{}        `json:"properties"`
}

// LayerControl configures the base/overlay switcher.
type LayerControl struct {
	Collapsed bool `json:"collapsed"`
}

// LegendControl places the depth legend on the map.
type LegendControl struct {
	Position string `json:"position"`
	domain.Legend
}

// View is everything the map page needs to draw one render cycle.
type View struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	FitBounds    domain.Viewport `json:"fitBounds"`
	BaseLayers   []BaseLayer     `json:"baseLayers"`
	ActiveBase   string          `json:"activeBase"`
	Overlays     []Overlay       `json:"overlays"`
	LayerControl LayerControl    `json:"layerControl"`
	Legend       LegendControl   `json:"legend"`
}

// Markers returns the event markers of the view, or nil if it has none.
func (v View) Markers() []domain.MarkerSpec {
	for _, o := range v.Overlays {
		if o.Kind == OverlayMarkers {
			return o.Markers
		}
	}
	return nil
}

// Input collects the parts of one view.
type Input struct {
	Viewport    domain.Viewport
	Events      []domain.EventFeature
	Style       StyleFunc
	Boundaries  []domain.BoundaryFeature // nil in the single-layer variant
	Legend      domain.Legend
	BaseLayers  []BaseLayer
	GeneratedAt time.Time
}

// Assemble composes base layers, the event overlay, the optional plate
// overlay, and the legend into a view fit to the viewport. The first base
// layer is active; every overlay starts visible.
func Assemble(in Input) (View, error) {
	if len(in.BaseLayers) == 0 {
		return View{}, errors.New("assemble view: at least one base layer is required")
	}
	if in.Style == nil {
		return View{}, errors.New("assemble view: style func is required")
	}

	markers := make([]domain.MarkerSpec, 0, len(in.Events))
	for _, f := range in.Events {
		markers = append(markers, in.Style(f))
	}

	overlays := make([]Overlay, 0, 2)
	if in.Boundaries != nil {
		style := PlateStyle
		overlays = append(overlays, Overlay{
			Name:    PlatesOverlayName,
			Kind:    OverlayGeoJSON,
			Visible: true,
			GeoJSON: boundaryCollection(in.Boundaries),
			Style:   &style,
		})
	}
	overlays = append(overlays, Overlay{
		Name:    EventsOverlayName,
		Kind:    OverlayMarkers,
		Visible: true,
		Markers: markers,
	})

	return View{
		GeneratedAt:  in.GeneratedAt,
		FitBounds:    in.Viewport,
		BaseLayers:   in.BaseLayers,
		ActiveBase:   in.BaseLayers[0].Name,
		Overlays:     overlays,
		LayerControl: LayerControl{Collapsed: false},
		Legend:       LegendControl{Position: LegendPosition, Legend: in.Legend},
	}, nil
}

func boundaryCollection(boundaries []domain.BoundaryFeature) *FeatureCollection {
	fc := &FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(boundaries))}
	for _, b := range boundaries {
		fc.Features = append(fc.Features, Feature{Type: "Feature", Geometry: b.Geometry})
	}
	return fc
}
