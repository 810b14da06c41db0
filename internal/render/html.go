package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

// PageTitle is the HTML document title.
const PageTitle = "Earthquakes in the last week"

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

type pageData struct {
	Title string
	View  View
}

// WriteHTML renders the view as a standalone map page. The view is embedded
// as JSON; the legend is rendered server-side and moved into a map control.
func WriteHTML(w io.Writer, v View) error {
	if err := pageTemplate.Execute(w, pageData{Title: PageTitle, View: v}); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}
