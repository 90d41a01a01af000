package handlers

import (
	"embed"
	"html/template"
	"time"

	"finboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the server-rendered pages. Each page is addressed by its
// file name, e.g. "goals.html".
func Templates() *template.Template {
	funcs := template.FuncMap{
		"inr": dashboard.FormatINR,
		"date": func(t time.Time) string {
			return t.Local().Format("02 Jan 2006")
		},
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
