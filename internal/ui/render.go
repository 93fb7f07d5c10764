// Package ui renders the settings form as an html page.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/termii-notify/smsadmin/internal/form"
)

//go:embed templates/*.html
var templatesFS embed.FS

const mediaType = "text/html"

// RefreshSeconds is how often a page showing a load in flight reloads.
const RefreshSeconds = 1

// Page is the data the settings page is rendered from.
type Page struct {
	View form.View

	// ActionURL is the url the form is posted to.
	ActionURL string

	// DismissBase is the url banners are dismissed at, without the banner.
	DismissBase string

	Tag language.Tag

	printer *message.Printer
}

// NewPage creates a page for view in the language tag. The query is
// carried over into the form and dismiss urls so the host context survives
// a post.
func NewPage(view form.View, path string, query url.Values, tag language.Tag) Page {
	return Page{
		View:        view,
		ActionURL:   withQuery(path, query),
		DismissBase: withQuery(path+"/dismiss", query),
		Tag:         tag,
		printer:     Printer(tag),
	}
}

// T translates a message key.
func (p Page) T(key string, args ...any) string {
	if p.printer == nil {
		p.printer = Printer(p.Tag)
	}

	return p.printer.Sprintf(key, args...)
}

// DismissURL returns the url dismissing banner.
func (p Page) DismissURL(banner string) string {
	u, err := url.Parse(p.DismissBase)
	if err != nil {
		return p.DismissBase
	}

	q := u.Query()
	q.Set("banner", banner)
	u.RawQuery = q.Encode()

	return u.String()
}

func (p Page) Lang() string {
	return p.Tag.String()
}

func (p Page) RefreshSeconds() int {
	return RefreshSeconds
}

func (p Page) SuccessDisplayMillis() int64 {
	return form.SuccessDisplay.Milliseconds()
}

// Renderer renders pages.
type Renderer struct {
	tmpl     *template.Template
	minifier *minify.M
	log      *zap.Logger
}

func NewRenderer(log *zap.Logger) (*Renderer, error) {
	tmpl, err := template.New("root").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	m := minify.New()
	m.AddFunc(mediaType, html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("text/javascript", js.Minify)

	if log == nil {
		log = zap.NewNop()
	}

	return &Renderer{
		tmpl:     tmpl,
		minifier: m,
		log:      log,
	}, nil
}

// Render writes the minified page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	if err := r.minifier.Minify(mediaType, w, &buf); err != nil {
		return fmt.Errorf("minify page: %w", err)
	}

	return nil
}

// ServePage renders page as the response to an http request.
func (r *Renderer) ServePage(w http.ResponseWriter, status int, page Page) {
	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		r.log.Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if _, err := w.Write(buf.Bytes()); err != nil {
		r.log.Debug("failed to write page", zap.Error(err))
	}
}

func withQuery(path string, query url.Values) string {
	u := url.URL{Path: path, RawQuery: query.Encode()}
	return u.String()
}
