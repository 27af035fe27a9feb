// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the storefront. Every
// page is paired with the base layout, which shows the branding, the
// navigation with the cart count, and any pending flash messages. HTMX
// requests receive only the "content" block.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spicehouse/internal/assets"
	"spicehouse/internal/config"
	"spicehouse/internal/markdown"
	"spicehouse/internal/middleware"
	"spicehouse/internal/session"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// StaticPrefix is the URL prefix the embedded static tree is served under.
const StaticPrefix = "/static/"

// PageData holds all data passed to site templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active navigation entry (e.g., "home", "products")
	Branding  config.Branding // Set by the renderer
	CartCount int             // Items in the visitor's cart, set from the session
	CSRFToken string          // CSRF token for forms
	Flashes   []session.Flash // One-time notification messages
	Data      map[string]any  // Page-specific data
}

// Renderer handles template parsing and execution for site pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	branding  config.Branding
}

// New creates a Renderer by parsing all site templates from the embedded
// filesystem. Resolved product image paths are turned into URLs under
// assetBase ("/static/" for the embedded tree, a bucket URL for S3). The
// placeholder image is always served from the embedded tree.
func New(branding config.Branding, assetBase string) (*Renderer, error) {
	if assetBase == "" {
		assetBase = StaticPrefix
	}

	r := &Renderer{
		templates: make(map[string]*template.Template),
		branding:  branding,
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "active"
				}
				return ""
			},
			"asset": func(p string) string {
				if p == assets.Placeholder {
					return assets.PublicURL(StaticPrefix, p)
				}
				return assets.PublicURL(assetBase, p)
			},
			"static": func(p string) string {
				return assets.PublicURL(StaticPrefix, p)
			},
			"price": func(d decimal.NullDecimal) string {
				if !d.Valid {
					return ""
				}
				return d.Decimal.StringFixed(2)
			},
			"money": func(d decimal.Decimal) string {
				return d.StringFixed(2)
			},
			"markdown": markdown.Render,
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"year": func() int {
				return time.Now().Year()
			},
		},
	}

	pages, err := fs.Glob(siteFS, "templates/site/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			siteFS, "templates/site/base.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a page with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.Status(w, r, http.StatusOK, name, data)
}

// Status renders a full page, or only its content block for HTMX requests,
// with the given status code. Output is buffered so a template error can
// still produce a clean 500.
func (rn *Renderer) Status(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = &PageData{}
	}

	data.Branding = rn.branding
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		data.CartCount = sess.Cart.Count()
	}

	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
