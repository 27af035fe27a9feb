// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"spicehouse/internal/cache"
	"spicehouse/internal/models"
)

// API serves the catalog as JSON. Responses are cached in Valkey when a
// cache is configured.
type API struct {
	catalog *Catalog
	cache   ResponseCache
}

// NewAPI creates a new API handler group. cache may be nil.
func NewAPI(catalog *Catalog, rc ResponseCache) *API {
	return &API{catalog: catalog, cache: rc}
}

// productJSON is the wire shape of a product.
type productJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_label"`
	Description   string  `json:"description,omitempty"`
	Price         *string `json:"price"`
	Image         string  `json:"image"`
	URL           string  `json:"url"`
}

func toJSON(v ProductView) productJSON {
	out := productJSON{
		ID:            v.ID.String(),
		Name:          v.Name,
		Slug:          v.Slug,
		Category:      string(v.Category),
		CategoryLabel: v.Category.Label(),
		Description:   v.Description,
		Image:         v.Image,
		URL:           v.URL(),
	}
	if v.Price.Valid {
		s := v.Price.Decimal.StringFixed(2)
		out.Price = &s
	}
	return out
}

// Products lists the catalog, honoring ?category= like the products page.
// Only the full listing and known categories are cached; any other value
// is answered directly so callers cannot mint cache keys.
func (a *API) Products(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	var key string
	if c, ok := models.ParseCategory(category); ok {
		category = string(c)
		key = cache.ProductListKey(category)
	} else if category == "" {
		key = cache.ProductListKey("")
	}
	if key != "" && a.serveCached(w, r, key) {
		return
	}

	views, err := a.catalog.List(r.Context(), models.Category(category))
	if err != nil {
		slog.Error("api list products", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	items := make([]productJSON, 0, len(views))
	for _, v := range views {
		items = append(items, toJSON(v))
	}
	a.respond(w, r, key, map[string]any{"products": items})
}

// Product returns one active product with its related products.
func (a *API) Product(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	key := cache.ProductKey(slugParam)
	if a.serveCached(w, r, key) {
		return
	}

	view, related, err := a.catalog.Detail(r.Context(), slugParam)
	if err != nil {
		slog.Error("api load product", "slug", slugParam, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if view == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	relatedJSON := make([]productJSON, 0, len(related))
	for _, v := range related {
		relatedJSON = append(relatedJSON, toJSON(v))
	}
	a.respond(w, r, key, map[string]any{
		"product": toJSON(*view),
		"related": relatedJSON,
	})
}

func (a *API) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if a.cache == nil {
		return false
	}
	body, ok := a.cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return true
}

// respond writes a 200 JSON body and stores it in the cache under key
// unless key is empty.
func (a *API) respond(w http.ResponseWriter, r *http.Request, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode api response", "key", key, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if a.cache != nil && key != "" {
		a.cache.Set(r.Context(), key, body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", "error", err)
	}
}
