package renderers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("renderers").ParseFS(templateFS, "templates/*.html"))
