package domain

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Fixed marker outline, shared by every event.
const (
	markerStrokeColor = "#000"
	markerWeight      = 1
	markerOpacity     = 1
	markerFillOpacity = 0.8 // lets overlapping markers show through
)

// PopupTimeLayout mirrors the browser's default Date string, e.g.
// "Tue Apr 16 2024 09:14:07 GMT-0700 (PDT)".
const PopupTimeLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// MarkerRadius maps magnitude to a circle radius in pixels. Magnitudes at or
// below -3 give a non-positive radius; that is passed through unchanged.
func MarkerRadius(magnitude float64) float64 {
	return (magnitude + 3.0) * 2.0
}

// MarkerStyleFor returns circle marker options for an event: size from
// magnitude, fill from depth.
func MarkerStyleFor(f EventFeature) MarkerStyle {
	return MarkerStyle{
		Radius:      MarkerRadius(f.Magnitude),
		FillColor:   ClassifyDepth(f.DepthKm),
		Color:       markerStrokeColor,
		Weight:      markerWeight,
		Opacity:     markerOpacity,
		FillOpacity: markerFillOpacity,
	}
}

// PopupHTML renders the popup body for an event. The place heading is
// escaped; magnitude and depth use two decimals. A nil loc means time.Local.
func PopupHTML(f EventFeature, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3><hr>", html.EscapeString(f.Place))
	fmt.Fprintf(&b, "<p>Magnitude: %.2f</p>", f.Magnitude)
	fmt.Fprintf(&b, "<p>Depth: %.2f km</p>", f.DepthKm)
	fmt.Fprintf(&b, "<p>%s</p>", f.Time().In(loc).Format(PopupTimeLayout))
	return b.String()
}

// StyleFeature derives the full marker spec for one event.
func StyleFeature(f EventFeature, loc *time.Location) MarkerSpec {
	return MarkerSpec{
		EventID:   f.ID,
		Position:  f.Position(),
		Style:     MarkerStyleFor(f),
		PopupHTML: PopupHTML(f, loc),
	}
}
