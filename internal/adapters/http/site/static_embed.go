package site

import (
	"embed"
	"html/template"
)

//go:embed static/upload_file.html
var staticFS embed.FS

// pageTemplate renders both the empty form and the result table.
var pageTemplate = template.Must(template.ParseFS(staticFS, "static/upload_file.html"))
