// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assets

import (
	"context"
	"errors"
	"io/fs"
	"strings"
)

// FSChecker checks asset existence in a file system, typically the embedded
// web/static tree or os.DirFS over a deployment directory.
type FSChecker struct {
	fsys fs.FS
}

// NewFSChecker returns a Checker over fsys.
func NewFSChecker(fsys fs.FS) *FSChecker {
	return &FSChecker{fsys: fsys}
}

// Exists reports whether a regular file exists at p. Directories count as
// missing.
func (c *FSChecker) Exists(_ context.Context, p string) (bool, error) {
	p = strings.TrimPrefix(p, "/")
	if !fs.ValidPath(p) {
		return false, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrInvalid}
	}
	info, err := fs.Stat(c.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// PublicURL maps a resolved image path to a URL under prefix (for example
// "/static/" or a CDN base). Absolute URLs and rooted paths pass through.
func PublicURL(prefix, p string) string {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") {
		return p
	}
	return strings.TrimRight(prefix, "/") + "/" + p
}
