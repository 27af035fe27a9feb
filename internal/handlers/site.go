// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"spicehouse/internal/models"
	"spicehouse/internal/render"
)

// Site groups handlers for the catalog and informational pages.
type Site struct {
	base
	catalog *Catalog
	faqs    FAQLister
}

// NewSite creates a new Site handler group.
func NewSite(renderer *render.Renderer, sessions SessionSaver, catalog *Catalog, faqs FAQLister) *Site {
	return &Site{
		base:    base{renderer: renderer, sessions: sessions},
		catalog: catalog,
		faqs:    faqs,
	}
}

// Home renders the home page with the featured products and the
// registration form.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := s.catalog.Featured(r.Context())
	if err != nil {
		serverError(w, "list featured products", err)
		return
	}

	s.page(w, r, http.StatusOK, "home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data:    map[string]any{"Featured": featured},
	})
}

// Products renders the catalog listing. The optional ?category= parameter
// narrows it to one category; an unknown category lists nothing.
func (s *Site) Products(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("category")

	var category models.Category
	if selected != "" {
		if c, ok := models.ParseCategory(selected); ok {
			category = c
			selected = string(c)
		} else {
			category = models.Category(selected)
		}
	}

	products, err := s.catalog.List(r.Context(), category)
	if err != nil {
		serverError(w, "list products", err)
		return
	}

	s.page(w, r, http.StatusOK, "products", &render.PageData{
		Title:   "Products",
		Section: "products",
		Data: map[string]any{
			"Products":   products,
			"Categories": models.Categories,
			"Selected":   selected,
		},
	})
}

// ProductDetail renders one active product with related products from the
// same category. Unknown or inactive products get a 404.
func (s *Site) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, related, err := s.catalog.Detail(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, "load product", err)
		return
	}
	if product == nil {
		s.notFound(w, r)
		return
	}

	s.page(w, r, http.StatusOK, "product_detail", &render.PageData{
		Title:   product.Name,
		Section: "products",
		Data: map[string]any{
			"Product": product,
			"Related": related,
		},
	})
}

// FAQ renders the active questions in display order.
func (s *Site) FAQ(w http.ResponseWriter, r *http.Request) {
	faqs, err := s.faqs.ListActive(r.Context())
	if err != nil {
		serverError(w, "list faqs", err)
		return
	}

	s.page(w, r, http.StatusOK, "faq", &render.PageData{
		Title:   "FAQ",
		Section: "faq",
		Data:    map[string]any{"FAQs": faqs},
	})
}

// Services renders the static services page.
func (s *Site) Services(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, "services", &render.PageData{
		Title:   "Services",
		Section: "services",
	})
}

// NotFound is the router's fallback handler.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r)
}
