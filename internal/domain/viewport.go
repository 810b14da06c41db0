package domain

import "fmt"

// ParseBoundingBox reads a feed bbox. Four values are
// [minLon, minLat, maxLon, maxLat]; six add the depth range as
// [minLon, minLat, minDepth, maxLon, maxLat, maxDepth].
func ParseBoundingBox(values []float64) (BoundingBox, error) {
	switch len(values) {
	case 4:
		return BoundingBox{
			MinLon: values[0],
			MinLat: values[1],
			MaxLon: values[2],
			MaxLat: values[3],
		}, nil
	case 6:
		return BoundingBox{
			MinLon:   values[0],
			MinLat:   values[1],
			MinDepth: values[2],
			MaxLon:   values[3],
			MaxLat:   values[4],
			MaxDepth: values[5],
			HasDepth: true,
		}, nil
	default:
		return BoundingBox{}, fmt.Errorf("%w: bbox has %d values, want 4 or 6", ErrMalformedDocument, len(values))
	}
}

// ComputeViewport converts a bounding box to map corners, swapping to
// (lat, lon) order. Degenerate and antimeridian-crossing boxes pass through
// unchanged.
func ComputeViewport(bbox BoundingBox) Viewport {
	return Viewport{
		SouthWest: LatLng{Lat: bbox.MinLat, Lng: bbox.MinLon},
		NorthEast: LatLng{Lat: bbox.MaxLat, Lng: bbox.MaxLon},
	}
}
