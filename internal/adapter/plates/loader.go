// Package plates loads the bundled tectonic plate boundary dataset
// (Bird 2003, PB2002_boundaries) used by the extended map variant.
package plates

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry json.RawMessage `json:"geometry"`
}

type geometryHeader struct {
	Type string `json:"type"`
}

// Load reads a GeoJSON FeatureCollection of plate boundaries from disk. The
// dataset ships with the service, so any error here is fatal at startup.
func Load(path string) ([]domain.BoundaryFeature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plate boundaries: %w", err)
	}
	defer f.Close()

	boundaries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return boundaries, nil
}

// Decode parses plate boundary features. Properties are ignored; every
// feature needs a geometry with a type.
func Decode(r io.Reader) ([]domain.BoundaryFeature, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: decode plate boundaries: %w", domain.ErrMalformedDocument, err)
	}
	if fc.Features == nil {
		return nil, fmt.Errorf("%w: plate boundaries have no features array", domain.ErrMalformedDocument)
	}

	out := make([]domain.BoundaryFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		var hdr geometryHeader
		if len(f.Geometry) == 0 || json.Unmarshal(f.Geometry, &hdr) != nil || hdr.Type == "" {
			return nil, fmt.Errorf("%w: plate boundary %d has no geometry type", domain.ErrMalformedDocument, i)
		}
		out = append(out, domain.BoundaryFeature{GeometryType: hdr.Type, Geometry: f.Geometry})
	}
	return out, nil
}
