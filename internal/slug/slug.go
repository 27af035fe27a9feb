// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and assignment of unique slugs against an existing set.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// apostrophes are dropped so "Grandma's" becomes "grandmas".
	apostrophes = strings.NewReplacer("'", "", "’", "")
	// nonAlphanumeric matches runs of anything that isn't a-z or 0-9.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Separator joins the words of a slug.
const Separator = "-"

// Generate creates a URL-friendly slug from the given string.
// Example: "Café Crème, 2026!" → "cafe-creme-2026"
func Generate(s string) string {
	result := strings.ToLower(fold(strings.TrimSpace(s)))
	result = apostrophes.Replace(result)
	result = nonAlphanumeric.ReplaceAllString(result, Separator)
	return strings.Trim(result, Separator)
}

// fold strips combining marks after canonical decomposition so accented
// Latin letters map to their ASCII base letter.
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
