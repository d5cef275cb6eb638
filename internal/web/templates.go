// Package web holds the HTML templates, embedded so the binary and the
// tests do not depend on the working directory.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}
