// Package web holds the embedded server-rendered dashboard assets.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded HTML templates. Panics on malformed
// templates, which is a build defect rather than a runtime condition.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
