package form

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/widget.js
var widgetJS []byte

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/form.html"))
