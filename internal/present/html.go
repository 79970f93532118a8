package present

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hayato-coosy/kouseian/internal/brief"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

// Page template names.
const (
	PageIndex    = "index.html"
	PageShare    = "share.html"
	PageNotFound = "not_found.html"
)

// ShareView is the data of the share page.
type ShareView struct {
	ID           string
	URL          string
	Result       brief.Result
	ChecklistKey string
}

// Renderer renders the HTML pages. Markdown in brief details is converted
// with goldmark and sanitized before it reaches the page.
type Renderer struct {
	templates map[string]*template.Template
	markdown  goldmark.Markdown
	policy    *bluemonday.Policy
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:    bluemonday.UGCPolicy(),
	}

	funcs := template.FuncMap{
		"markdown":     r.Markdown,
		"directItemID": DirectItemID,
		"subItemID":    SubItemID,
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, page := range pages {
		name := page[len("templates/"):]
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutTemplate, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Markdown converts src to sanitized HTML.
func (r *Renderer) Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// Render writes page with data to w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %s", page)
	}
	return tmpl.ExecuteTemplate(w, layoutTemplate, data)
}

// RenderHTTP writes page with status. Nothing is written to w if the
// template fails.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, page, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
