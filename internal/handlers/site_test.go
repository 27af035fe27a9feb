package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spicehouse/internal/models"
	"spicehouse/internal/session"
)

func TestHome(t *testing.T) {
	env := newTestEnv(t)
	for _, n := range []string{"Allspice", "Black Pepper", "Cardamom", "Cinnamon", "Cloves", "Saffron"} {
		env.Products.add(n, models.CategoryOther, "2.00", true)
	}

	rec := httptest.NewRecorder()
	env.Site.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, name := range []string{"Allspice", "Black Pepper", "Cardamom", "Cinnamon"} {
		if !strings.Contains(body, name) {
			t.Errorf("featured products should include %q", name)
		}
	}
	for _, name := range []string{"Cloves", "Saffron"} {
		if strings.Contains(body, name) {
			t.Errorf("only four products are featured, found %q", name)
		}
	}
	if !strings.Contains(body, `action="/register"`) {
		t.Error("home page should carry the registration form")
	}
}

func TestHomeShowsAndClearsFlashes(t *testing.T) {
	env := newTestEnv(t)

	sess := session.New()
	sess.AddFlash(session.FlashSuccess, "Thanks for registering!")

	rec := httptest.NewRecorder()
	env.Site.Home(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil), sess))

	if !strings.Contains(rec.Body.String(), "Thanks for registering!") {
		t.Error("pending flash should be rendered")
	}
	if len(sess.Flashes) != 0 {
		t.Error("flashes should be consumed by the render")
	}
	if env.Sessions.last() != sess {
		t.Error("session should be saved after consuming flashes")
	}
}

func TestHomeStoreError(t *testing.T) {
	env := newTestEnv(t)
	env.Products.err = errBoom

	rec := httptest.NewRecorder()
	env.Site.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t)
	env.Products.add("Black Pepper", models.CategoryPepper, "4.50", true)
	env.Products.add("Green Cardamom", models.CategoryCardamom, "9.00", true)
	env.Products.add("Ground Cardamom", models.CategoryCardamom, "7.00", true)
	env.Products.add("Old Cloves", models.CategoryClove, "1.00", false)

	tests := []struct {
		name     string
		target   string
		want     []string
		dontWant []string
	}{
		{
			name:     "all categories",
			target:   "/products",
			want:     []string{"Black Pepper", "Green Cardamom", "/static/assets/black_pepper.svg"},
			dontWant: []string{"Ground Cardamom", "Old Cloves"},
		},
		{
			name:     "filtered",
			target:   "/products?category=Cardamom",
			want:     []string{"Green Cardamom"},
			dontWant: []string{"Black Pepper", "Ground Cardamom"},
		},
		{
			name:     "filter by label is case insensitive",
			target:   "/products?category=black+pepper",
			want:     []string{"Black Pepper"},
			dontWant: []string{"Green Cardamom"},
		},
		{
			name:     "unknown category lists nothing",
			target:   "/products?category=Saffron",
			want:     []string{"No products found."},
			dontWant: []string{"Black Pepper", "Green Cardamom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.Site.Products(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
			for _, w := range tt.dontWant {
				if strings.Contains(body, `alt="`+w+`"`) {
					t.Errorf("body should not list %q", w)
				}
			}
		})
	}

	if got := env.Products.lastFilter.ExcludeNames; len(got) != len(excludedNames) {
		t.Errorf("exclusions passed to the store = %v, want %v", got, excludedNames)
	}
}

func TestProductsMarksSelectedCategory(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Site.Products(rec, httptest.NewRequest(http.MethodGet, "/products?category=clove", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `href="/products?category=Clove" class="active"`) {
		t.Error("selected category should be marked active")
	}
	for _, c := range models.Categories {
		if !strings.Contains(body, ">"+c.Label()+"<") {
			t.Errorf("category %q should be listed", c.Label())
		}
	}
}

func TestProductDetail(t *testing.T) {
	env := newTestEnv(t)
	p := env.Products.add("Green Cardamom", models.CategoryCardamom, "9.00", true)
	p.Description = "Aromatic **green** pods."
	for _, n := range []string{"Black Cardamom", "Cardamom Seeds", "Ground Cardamom", "White Cardamom"} {
		env.Products.add(n, models.CategoryCardamom, "", true)
	}
	env.Products.add("Black Pepper", models.CategoryPepper, "4.50", true)

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/products/green-cardamom/", nil), "slug", "green-cardamom")
	env.Site.ProductDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<strong>green</strong>") {
		t.Error("description should be rendered as markdown")
	}
	if !strings.Contains(body, "9.00") {
		t.Error("price should be shown")
	}

	related := 0
	for _, n := range []string{"Black Cardamom", "Cardamom Seeds", "Ground Cardamom", "White Cardamom"} {
		if strings.Contains(body, ">"+n+"<") {
			related++
		}
	}
	if related != 3 {
		t.Errorf("related products shown = %d, want 3", related)
	}
	if strings.Contains(body, "Black Pepper") {
		t.Error("related products should share the category")
	}
}

func TestProductDetailNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.Products.add("Old Cloves", models.CategoryClove, "1.00", false)

	for _, slug := range []string{"missing", "old-cloves"} {
		t.Run(slug, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/products/"+slug+"/", nil), "slug", slug)
			env.Site.ProductDetail(rec, req)

			if rec.Code != http.StatusNotFound {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
			}
			if !strings.Contains(rec.Body.String(), "Page not found") {
				t.Error("expected the not found page")
			}
		})
	}
}

func TestProductDetailResolverError(t *testing.T) {
	env := newTestEnv(t)
	env.Products.add("Cloves", models.CategoryClove, "1.00", true)
	env.Catalog.resolver = fakeResolver{err: errBoom}

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/products/cloves/", nil), "slug", "cloves")
	env.Site.ProductDetail(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestFAQ(t *testing.T) {
	env := newTestEnv(t)
	env.FAQs.items = []models.FAQ{
		{Question: "Do you ship abroad?", Answer: "Yes."},
		{Question: "Are your spices organic?", Answer: "Most of them."},
	}

	rec := httptest.NewRecorder()
	env.Site.FAQ(rec, httptest.NewRequest(http.MethodGet, "/faq", nil))

	body := rec.Body.String()
	first := strings.Index(body, "Do you ship abroad?")
	second := strings.Index(body, "Are your spices organic?")
	if first < 0 || second < 0 || first > second {
		t.Error("FAQ entries should be listed in store order")
	}
}

func TestServices(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Site.Services(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Wholesale supply") {
		t.Error("services content expected")
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Site.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
