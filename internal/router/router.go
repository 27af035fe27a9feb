// Package router sets up all HTTP routes and middleware chains for the
// storefront. Static files and the JSON API skip the session; pages load
// the session and enforce CSRF on state-changing requests.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"spicehouse/internal/handlers"
	"spicehouse/internal/middleware"
)

// Handlers bundles the handler groups served by the router.
type Handlers struct {
	Site  *handlers.Site
	Forms *handlers.Forms
	Cart  *handlers.Cart
	API   *handlers.API
}

// Options configures the router.
type Options struct {
	// Static is served at /static/.
	Static fs.FS
	// FormLimiter throttles form submissions per client IP; nil disables it.
	FormLimiter *middleware.RateLimiter
	// SecureCookies marks the CSRF cookie Secure.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions middleware.SessionGetter, h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware: applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check: no session, no CSRF.
	r.Get("/health", healthHandler)

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static))))
	}

	// Read-only catalog API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.API.Products)
		r.Get("/products/{slug}", h.API.Product)
	})

	loadSession := middleware.LoadSession(sessions)
	csrf := middleware.NewCSRF(opts.SecureCookies)
	limit := func(next http.Handler) http.Handler { return next }
	if opts.FormLimiter != nil {
		limit = opts.FormLimiter.Middleware
	}

	// Site pages: session-backed, CSRF-protected.
	r.Group(func(r chi.Router) {
		r.Use(loadSession)
		r.Use(csrf)

		r.Get("/", h.Site.Home)
		r.Get("/products", h.Site.Products)
		r.Get("/products/{slug}", h.Site.ProductDetail)
		r.Get("/products/{slug}/", h.Site.ProductDetail)
		r.Get("/faq", h.Site.FAQ)
		r.Get("/services", h.Site.Services)
		r.Get("/contact", h.Forms.Contact)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.View)
			r.Post("/add/{id}", h.Cart.Add)
			r.Post("/remove/{id}", h.Cart.Remove)
			r.With(limit).Post("/checkout", h.Cart.Checkout)
		})

		// Form submissions: rate limited per client IP.
		r.With(limit).Post("/contact", h.Forms.ContactSubmit)
		r.With(limit).Post("/register", h.Forms.Register)
	})

	r.NotFound(loadSession(csrf(http.HandlerFunc(h.Site.NotFound))).ServeHTTP)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
