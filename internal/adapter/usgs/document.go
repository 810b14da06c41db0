package usgs

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// USGS GeoJSON summary feed wire types. Pointer fields distinguish a missing
// value from zero.

type featureCollection struct {
	BBox     []float64 `json:"bbox"`
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   *geometry  `json:"geometry"`
}

type properties struct {
	Place *string  `json:"place"`
	Mag   *float64 `json:"mag"`
	Time  *int64   `json:"time"`
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// DecodeDocument parses a feed document. The bbox, and each feature's
// magnitude, time, and three coordinates, are required; a missing place
// decodes as an empty string. Any failure wraps domain.ErrMalformedDocument
// and rejects the whole document.
func DecodeDocument(r io.Reader) (domain.Document, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return domain.Document{}, fmt.Errorf("%w: decode feed: %w", domain.ErrMalformedDocument, err)
	}

	bbox, err := domain.ParseBoundingBox(fc.BBox)
	if err != nil {
		return domain.Document{}, err
	}

	events := make([]domain.EventFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		ev, err := toEventFeature(f)
		if err != nil {
			return domain.Document{}, fmt.Errorf("%w: feature %d (%s): %s", domain.ErrMalformedDocument, i, f.ID, err)
		}
		events = append(events, ev)
	}

	return domain.Document{BBox: bbox, Features: events}, nil
}

func toEventFeature(f feature) (domain.EventFeature, error) {
	if f.Properties.Mag == nil {
		return domain.EventFeature{}, fmt.Errorf("missing mag")
	}
	if f.Properties.Time == nil {
		return domain.EventFeature{}, fmt.Errorf("missing time")
	}
	if f.Geometry == nil || len(f.Geometry.Coordinates) < 3 {
		return domain.EventFeature{}, fmt.Errorf("geometry needs [lon, lat, depth]")
	}

	var place string
	if f.Properties.Place != nil {
		place = *f.Properties.Place
	}

	c := f.Geometry.Coordinates
	return domain.EventFeature{
		ID:        f.ID,
		Place:     place,
		Magnitude: *f.Properties.Mag,
		DepthKm:   c[2],
		TimeMs:    *f.Properties.Time,
		Longitude: c[0],
		Latitude:  c[1],
	}, nil
}
