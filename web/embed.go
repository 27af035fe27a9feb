// Package web provides the embedded static tree served at /static/: the site
// stylesheet and the product images under assets/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
