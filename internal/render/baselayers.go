package render

// Base layer display names.
const (
	CountriesMapName   = "Countries Map"
	TopographicMapName = "Topographic Map"
)

// OpenStreetMapLayer is the default street-style background.
var OpenStreetMapLayer = BaseLayer{
	Name:        CountriesMapName,
	URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
}

// OpenTopoMapLayer is the default topographic background.
var OpenTopoMapLayer = BaseLayer{
	Name:        TopographicMapName,
	URLTemplate: "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
	Attribution: `Map data: &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, ` +
		`<a href="http://viewfinderpanoramas.org">SRTM</a> | Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> ` +
		`(<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`,
}

// DefaultBaseLayers returns the street background, plus the topographic one
// in the extended variant.
func DefaultBaseLayers(extended bool) []BaseLayer {
	if extended {
		return []BaseLayer{OpenStreetMapLayer, OpenTopoMapLayer}
	}
	return []BaseLayer{OpenStreetMapLayer}
}
