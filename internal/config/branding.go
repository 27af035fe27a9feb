// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// SocialLink is a named link shown in the site footer.
type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Branding holds the site identity shown on every page.
type Branding struct {
	SiteName string       `yaml:"site_name"`
	Tagline  string       `yaml:"tagline"`
	Email    string       `yaml:"email"`
	Phone    string       `yaml:"phone"`
	Address  string       `yaml:"address"`
	Social   []SocialLink `yaml:"social"`
}

// DefaultBranding is used when no branding file exists. Fields missing
// from a file are filled from it as well.
func DefaultBranding() Branding {
	return Branding{
		SiteName: "Spice House",
		Tagline:  "Whole and ground spices, sourced direct",
		Email:    "hello@spicehouse.local",
	}
}

// LoadBranding reads branding from a YAML file. A missing file yields
// DefaultBranding; a malformed one is an error.
func LoadBranding(path string) (Branding, error) {
	b := DefaultBranding()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return Branding{}, fmt.Errorf("read branding %s: %w", path, err)
	}

	var file Branding
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Branding{}, fmt.Errorf("parse branding %s: %w", path, err)
	}

	if file.SiteName != "" {
		b.SiteName = file.SiteName
	}
	if file.Tagline != "" {
		b.Tagline = file.Tagline
	}
	if file.Email != "" {
		b.Email = file.Email
	}
	b.Phone = file.Phone
	b.Address = file.Address
	b.Social = file.Social
	return b, nil
}
