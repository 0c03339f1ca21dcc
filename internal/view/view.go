// Package view renders the HTML pages and fragments. Every page and fragment
// is a templ.Component so handlers can Render it directly or patch it into
// the page over SSE.
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page templates each define "title" and "content" on top of the layout.
var pageFiles = []string{
	"landing",
	"home",
	"listing_detail",
	"listing_form",
	"profile",
	"payment",
	"login",
	"signup",
	"error",
}

var (
	base  *template.Template
	pages = map[string]*template.Template{}
)

func init() {
	base = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/fragments.html",
	))
	for _, name := range pageFiles {
		t := template.Must(base.Clone())
		pages[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
}

var funcs = template.FuncMap{
	"rupees": func(v int64) string { return "₹" + strconv.FormatInt(v, 10) },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// layoutData is what the shared layout sees. Body is page-specific.
type layoutData struct {
	Title    string
	UserName string
	LoggedIn bool
	Body     any
}

func page(name, title, userName string, body any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", layoutData{
			Title:    title,
			UserName: userName,
			LoggedIn: userName != "",
			Body:     body,
		})
	})
}

func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return base.ExecuteTemplate(w, name, data)
	})
}
