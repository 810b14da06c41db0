// Package domain models USGS earthquake feed data and the rules that turn it
// into styled map primitives.
//
// # Data Source
//
// Events come from the USGS real-time GeoJSON summary feeds, listed at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php. The default
// feed is "Past 7 Days, All Earthquakes" (all_week.geojson), regenerated by
// USGS roughly every minute.
//
// # Feed Conventions
//
// Bounding box:
//
//	The top-level "bbox" lists longitude before latitude, and includes the
//	depth range when present:
//	  [minLon, minLat, maxLon, maxLat]
//	  [minLon, minLat, minDepth, maxLon, maxLat, maxDepth]
//	Map libraries want (lat, lon) pairs, so [ComputeViewport] swaps the order.
//
// Coordinates:
//
//	Each feature's geometry is a Point with [longitude, latitude, depth].
//	Depth is in kilometres below the surface. Shallow events near the coast
//	can report small negative depths (above the WGS-84 ellipsoid).
//
// Time:
//
//	"time" is milliseconds since the Unix epoch, UTC. Popups render it in the
//	configured display zone, which defaults to the process's local zone.
//
// Magnitude:
//
//	"mag" is a float, typically -1.0 to 9.5. Negative magnitudes are valid
//	for very small local events.
//
// # Depth Buckets
//
// Marker colour is chosen from a single ordered table of six buckets
// (ColorBrewer oranges). The same table feeds the legend, so the classifier
// and the legend cannot drift apart:
//
//	(-10, 10]  #FED976      (50, 70]  #FC4E2A
//	(10, 30]   #FEB24C      (70, 90]  #E31A1C
//	(30, 50]   #FD8D3C      > 90      #BD0026
//	<= -10     #FFEDA0 (catch-all, not shown in the legend)
//
// # Marker Size
//
// Radius is linear in magnitude: (mag + 3) * 2 pixels. The constants are an
// aesthetic choice kept as-is for visual compatibility with existing maps.
package domain
