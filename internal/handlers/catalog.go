// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"

	"spicehouse/internal/models"
	"spicehouse/internal/store"
)

const (
	featuredLimit = 4
	relatedLimit  = 3
)

// ProductView is a product together with its resolved image path.
type ProductView struct {
	*models.Product
	Image string
}

// Catalog builds product views for the pages and the API. Listing applies
// the configured name exclusions; featured and related products do not.
type Catalog struct {
	products ProductStore
	resolver ImageResolver
	excluded []string
}

// NewCatalog creates a Catalog hiding the products named in excluded from
// listings.
func NewCatalog(products ProductStore, resolver ImageResolver, excluded []string) *Catalog {
	return &Catalog{products: products, resolver: resolver, excluded: excluded}
}

// List returns the active, non-excluded products, optionally limited to
// one category.
func (c *Catalog) List(ctx context.Context, category models.Category) ([]ProductView, error) {
	products, err := c.products.ListActive(ctx, store.ProductFilter{
		Category:     category,
		ExcludeNames: c.excluded,
	})
	if err != nil {
		return nil, err
	}
	return c.views(ctx, products)
}

// Featured returns the first active products by name for the home page.
func (c *Catalog) Featured(ctx context.Context) ([]ProductView, error) {
	products, err := c.products.Featured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}
	return c.views(ctx, products)
}

// Detail returns the active product with the given slug and up to three
// related products from its category. A missing product is (nil, nil, nil).
func (c *Catalog) Detail(ctx context.Context, slug string) (*ProductView, []ProductView, error) {
	p, err := c.products.FindBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, nil, err
	}
	view, err := c.view(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	related, err := c.products.Related(ctx, p, relatedLimit)
	if err != nil {
		return nil, nil, err
	}
	relatedViews, err := c.views(ctx, related)
	if err != nil {
		return nil, nil, err
	}
	return &view, relatedViews, nil
}

func (c *Catalog) views(ctx context.Context, products []models.Product) ([]ProductView, error) {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		v, err := c.view(ctx, &products[i])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (c *Catalog) view(ctx context.Context, p *models.Product) (ProductView, error) {
	img, err := c.resolver.Resolve(ctx, p.Name, string(p.Category), p.ImageURL)
	if err != nil {
		return ProductView{}, fmt.Errorf("resolve image for %s: %w", p.Slug, err)
	}
	return ProductView{Product: p, Image: img}, nil
}
