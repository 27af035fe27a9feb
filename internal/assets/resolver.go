// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assets resolves product images to static asset paths. A product
// without an explicit image URL is matched against conventionally named
// files under the assets/ directory (e.g. "assets/black_pepper.png"),
// probing candidates derived from the product name and category in a fixed
// order until one exists.
package assets

import (
	"context"
	"fmt"
	"path"
	"strings"

	"spicehouse/internal/slug"
)

const (
	// Dir is the directory, relative to the static root, holding product images.
	Dir = "assets"

	// Placeholder is returned when no candidate image exists.
	Placeholder = "assets/placeholder.svg"
)

// Extensions lists image file extensions in probe order: vector first,
// then raster formats.
var Extensions = []string{"svg", "png", "jpg", "jpeg"}

// aliases maps a basis string to conventional filenames that differ from
// the slug, e.g. the "Pepper" category is stored as black_pepper.*.
var aliases = map[string][]string{
	"clove":        {"cloves"},
	"pepper":       {"black_pepper"},
	"black-pepper": {"black_pepper"},
}

// Checker reports whether a file exists at path in the static asset
// namespace. A missing file is (false, nil); any other failure is an error.
type Checker interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(ctx context.Context, path string) (bool, error)

// Exists calls f.
func (f CheckerFunc) Exists(ctx context.Context, path string) (bool, error) {
	return f(ctx, path)
}

// Resolver picks the image path for a product. It holds no mutable state
// and is safe for concurrent use when its Checker is.
type Resolver struct {
	checker Checker
}

// NewResolver returns a Resolver probing files through checker.
func NewResolver(checker Checker) *Resolver {
	return &Resolver{checker: checker}
}

// Resolve returns imageURL unchanged when it is set. Otherwise it returns
// the first candidate path from Candidates that exists, or Placeholder.
// Checker errors are returned rather than treated as a missing file.
func (r *Resolver) Resolve(ctx context.Context, name, category, imageURL string) (string, error) {
	if strings.TrimSpace(imageURL) != "" {
		return imageURL, nil
	}

	for _, p := range Candidates(name, category) {
		ok, err := r.checker.Exists(ctx, p)
		if err != nil {
			return "", fmt.Errorf("asset exists %s: %w", p, err)
		}
		if ok {
			return p, nil
		}
	}
	return Placeholder, nil
}

// Candidates returns the ordered list of asset paths probed for a product.
// For each extension every basis string is tried, then the same again with
// separators replaced by spaces ("assets/ground cardamom.png").
func Candidates(name, category string) []string {
	bases := Basis(name, category)

	spaced := newOrderedSet()
	for _, b := range bases {
		s := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(b))
		spaced.add(s)
	}

	paths := newOrderedSet()
	for _, group := range [][]string{bases, spaced.items} {
		for _, ext := range Extensions {
			for _, b := range group {
				paths.add(path.Join(Dir, b+"."+ext))
			}
		}
	}
	return paths.items
}

// Basis returns the ordered, de-duplicated filename stems derived from a
// product's name and category: name forms, category forms, alias
// expansions, then forms of the name's first word.
func Basis(name, category string) []string {
	nameForms := forms(slug.Generate(name))
	categoryForms := forms(slug.Generate(category))

	var firstWordForms []string
	if fields := strings.Fields(name); len(fields) > 0 {
		firstWordForms = forms(slug.Generate(fields[0]))
	}

	set := newOrderedSet()
	set.add(nameForms...)
	set.add(categoryForms...)
	for _, group := range [][]string{nameForms, categoryForms, firstWordForms} {
		for _, b := range group {
			set.add(aliases[b]...)
		}
	}
	set.add(firstWordForms...)
	return set.items
}

// forms expands a slug into its dash, underscore and compact spellings.
func forms(s string) []string {
	if s == "" {
		return nil
	}
	compact := strings.NewReplacer("-", "", "_", "").Replace(s)
	return []string{s, strings.ReplaceAll(s, "-", "_"), compact}
}

// orderedSet keeps insertion order and drops empty or repeated strings.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if v == "" || s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.items = append(s.items, v)
	}
}
