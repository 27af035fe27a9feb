package handlers

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spicehouse/internal/assets"
	"spicehouse/internal/config"
	"spicehouse/internal/events"
	"spicehouse/internal/middleware"
	"spicehouse/internal/models"
	"spicehouse/internal/render"
	"spicehouse/internal/session"
	"spicehouse/internal/store"
	"spicehouse/web"
)

// TestIntegrationCatalogAndCart runs the product page and the cart against
// PostgreSQL and Valkey with the embedded asset tree.
func TestIntegrationCatalogAndCart(t *testing.T) {
	db := testDB(t)
	client := testValkeyClient(t)
	ctx := context.Background()

	products := store.NewProductStore(db)
	p := &models.Product{
		Name:     "Integration Pepper " + uuid.NewString()[:8],
		Category: models.CategoryPepper,
		Price:    decimal.NewNullDecimal(decimal.RequireFromString("4.50")),
		IsActive: true,
	}
	if err := products.Save(ctx, p); err != nil {
		t.Fatalf("save product: %v", err)
	}
	t.Cleanup(func() { products.Delete(ctx, p.ID) })

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		t.Fatalf("sub static: %v", err)
	}
	rn, err := render.New(config.DefaultBranding(), "")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	sessions := session.NewStore(client, false)
	catalog := NewCatalog(products, assets.NewResolver(assets.NewFSChecker(static)), nil)
	site := NewSite(rn, sessions, catalog, store.NewFAQStore(db))
	cartHandlers := NewCart(rn, sessions, products, store.NewOrderStore(db), events.Discard{})
	withSessions := middleware.LoadSession(sessions)

	// Product page resolves the category image from the embedded tree.
	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, p.URL(), nil), "slug", p.Slug)
	withSessions(http.HandlerFunc(site.ProductDetail)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "/static/assets/black_pepper.svg") {
		t.Error("product image should resolve to the pepper asset")
	}

	// Adding to the cart creates the session cookie.
	rec = httptest.NewRecorder()
	req = withChiURLParam(httptest.NewRequest(http.MethodPost, "/cart/add/"+p.ID.String(), nil), "id", p.ID.String())
	withSessions(http.HandlerFunc(cartHandlers.Add)).ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("add status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected a session cookie after adding to the cart")
	}

	// The cart page reads the stored session.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookie)
	withSessions(http.HandlerFunc(cartHandlers.View)).ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, p.Name) {
		t.Error("cart should list the added product")
	}
	if !strings.Contains(body, `<span id="cart-count">1</span>`) {
		t.Error("cart count should be 1")
	}
}
