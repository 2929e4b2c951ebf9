package templates

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Parse parses the page templates
func Parse() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(files, "*.html")
}
