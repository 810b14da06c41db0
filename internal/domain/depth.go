package domain

// CatchAllColor is used for depths at or below the shallowest bucket bound.
// It sits on the same colour scale but outside the expected depth range.
const CatchAllColor = "#FFEDA0"

// LegendTitle heads the legend in the extended (plate boundary) variant.
const LegendTitle = "Depth scale"

// DepthUnit is appended to every legend label.
const DepthUnit = "km"

// DepthBucket is one depth range: depths strictly greater than Lower (and not
// matched by a deeper bucket) get Color.
type DepthBucket struct {
	Lower float64
	Label string
	Color string
}

// depthBuckets is ordered shallow to deep. Classification scans it from the
// end; the legend reads it from the start. Both must come from this table.
var depthBuckets = [...]DepthBucket{
	{Lower: -10, Label: "-10 - 10", Color: "#FED976"},
	{Lower: 10, Label: "10 - 30", Color: "#FEB24C"},
	{Lower: 30, Label: "30 - 50", Color: "#FD8D3C"},
	{Lower: 50, Label: "50 - 70", Color: "#FC4E2A"},
	{Lower: 70, Label: "70 - 90", Color: "#E31A1C"},
	{Lower: 90, Label: "90+", Color: "#BD0026"},
}

// DepthBuckets returns a copy of the bucket table, shallow to deep.
func DepthBuckets() []DepthBucket {
	out := make([]DepthBucket, len(depthBuckets))
	copy(out, depthBuckets[:])
	return out
}

// ClassifyDepth returns the fill colour for a depth in kilometres: the colour
// of the deepest bucket whose lower bound the depth exceeds, or CatchAllColor.
// NaN matches no bucket.
func ClassifyDepth(depthKm float64) string {
	for i := len(depthBuckets) - 1; i >= 0; i-- {
		if depthKm > depthBuckets[i].Lower {
			return depthBuckets[i].Color
		}
	}
	return CatchAllColor
}

// LegendEntry pairs a depth range label with its swatch colour.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend is the static depth colour scale shown next to the map.
type Legend struct {
	Title   string        `json:"title,omitempty"`
	Unit    string        `json:"unit"`
	Entries []LegendEntry `json:"entries"`
}

// BuildLegend lists every depth bucket, shallow to deep. The title is only
// set when withTitle is true.
func BuildLegend(withTitle bool) Legend {
	l := Legend{
		Unit:    DepthUnit,
		Entries: make([]LegendEntry, 0, len(depthBuckets)),
	}
	if withTitle {
		l.Title = LegendTitle
	}
	for _, b := range depthBuckets {
		l.Entries = append(l.Entries, LegendEntry{Label: b.Label, Color: b.Color})
	}
	return l
}
