// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the spice family a product belongs to.
type Category string

const (
	CategoryCardamom Category = "Cardamom"
	CategoryClove    Category = "Clove"
	CategoryCinnamon Category = "Cinnamon"
	CategoryPepper   Category = "Pepper"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCardamom,
	CategoryClove,
	CategoryCinnamon,
	CategoryPepper,
	CategoryOther,
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	if c == CategoryPepper {
		return "Black Pepper"
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps free text to a Category, matching case-insensitively
// on the value or label. Unknown input yields CategoryOther and false.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, true
		}
	}
	return CategoryOther, false
}

// Product is a catalog entry. Slug is empty until the product is first
// saved; once assigned it is never recomputed.
type Product struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug,omitempty"`
	Category    Category            `json:"category"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	ImageURL    string              `json:"image_url,omitempty"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// HasPrice returns true if the product has a price set.
func (p *Product) HasPrice() bool {
	return p.Price.Valid
}

// URL returns the public detail page path of the product.
func (p *Product) URL() string {
	return "/products/" + p.Slug + "/"
}
