// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Fallback is used as the base when a name has no slug-able characters.
const Fallback = "item"

// Checker reports whether a slug is already taken by a record other than
// excludeID. Pass uuid.Nil as excludeID for records that don't exist yet.
type Checker interface {
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

// SlugExists calls f.
func (f CheckerFunc) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	return f(ctx, slug, excludeID)
}

// Assign returns a slug for name that no other record uses. The plain slug
// wins when free; otherwise a numeric suffix starting at 2 is appended
// ("black-pepper-2", "black-pepper-3", ...). Errors from the checker are
// returned as-is, wrapped with the candidate being checked.
func Assign(ctx context.Context, name string, excludeID uuid.UUID, c Checker) (string, error) {
	base := Generate(name)
	if base == "" {
		base = Fallback
	}

	candidate := base
	for n := 2; ; n++ {
		taken, err := c.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("slug check %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = base + Separator + strconv.Itoa(n)
	}
}
