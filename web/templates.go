package web

import (
	"embed"
	"html/template"
	"net/url"
	"time"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"photoURL": func(name string) string {
		return ImagesURL + url.PathEscape(name)
	},
	"formatDate": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

// LoadTemplates parses the embedded page templates, to be passed to gin's SetHTMLTemplate
func LoadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl"))
}
