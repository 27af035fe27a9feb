// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: in-memory fakes for the stores and services, plus PostgreSQL and
// Valkey helpers for the integration tests, which are skipped when those
// services are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"spicehouse/internal/config"
	"spicehouse/internal/database"
	"spicehouse/internal/mail"
	"spicehouse/internal/middleware"
	"spicehouse/internal/models"
	"spicehouse/internal/render"
	"spicehouse/internal/session"
	"spicehouse/internal/store"
)

var errBoom = errors.New("boom")

// fakeProducts is an in-memory ProductStore.
type fakeProducts struct {
	items []*models.Product
	err   error

	lastFilter store.ProductFilter
}

func (f *fakeProducts) add(name string, category models.Category, price string, active bool) *models.Product {
	p := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Slug:     strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Category: category,
		IsActive: active,
	}
	if price != "" {
		p.Price = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
	f.items = append(f.items, p)
	return p
}

func (f *fakeProducts) active() []models.Product {
	var out []models.Product
	for _, p := range f.items {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeProducts) ListActive(_ context.Context, filter store.ProductFilter) ([]models.Product, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	excluded := map[string]bool{}
	for _, n := range filter.ExcludeNames {
		excluded[n] = true
	}
	var out []models.Product
	for _, p := range f.active() {
		if excluded[p.Name] {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Featured(_ context.Context, limit int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.active()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProducts) Related(_ context.Context, p *models.Product, limit int) ([]models.Product, error) {
	var out []models.Product
	for _, o := range f.active() {
		if o.Category == p.Category && o.ID != p.ID && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeProducts) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.items {
		if p.Slug == slug && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uuid.UUID]*models.Product)
	for _, id := range ids {
		for _, p := range f.items {
			if p.ID == id {
				cp := *p
				out[id] = &cp
			}
		}
	}
	return out, nil
}

// fakeResolver maps every product to an svg named after its slug.
type fakeResolver struct {
	err error
}

func (f fakeResolver) Resolve(_ context.Context, name, category, imageURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if imageURL != "" {
		return imageURL, nil
	}
	return "assets/" + strings.ToLower(strings.ReplaceAll(name, " ", "_")) + ".svg", nil
}

type fakeFAQs struct {
	items []models.FAQ
	err   error
}

func (f *fakeFAQs) ListActive(context.Context) ([]models.FAQ, error) {
	return f.items, f.err
}

type fakeInquiries struct {
	registrations []*models.VisitorRegistration
	contacts      []*models.ContactMessage
	err           error
}

func (f *fakeInquiries) CreateRegistration(_ context.Context, v *models.VisitorRegistration) error {
	if f.err != nil {
		return f.err
	}
	v.ID = uuid.New()
	f.registrations = append(f.registrations, v)
	return nil
}

func (f *fakeInquiries) CreateContact(_ context.Context, m *models.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	m.ID = uuid.New()
	f.contacts = append(f.contacts, m)
	return nil
}

type fakeOrders struct {
	orders []*models.Order
	err    error
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	if f.err != nil {
		return f.err
	}
	o.ID = uuid.New()
	f.orders = append(f.orders, o)
	return nil
}

// fakeSessions records every saved session.
type fakeSessions struct {
	saved []*session.Data
	err   error
}

func (f *fakeSessions) Save(_ context.Context, _ http.ResponseWriter, _ *http.Request, data *session.Data) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, data)
	return nil
}

func (f *fakeSessions) last() *session.Data {
	if len(f.saved) == 0 {
		return nil
	}
	return f.saved[len(f.saved)-1]
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeEvents struct {
	placed []*models.Order
	err    error
}

func (f *fakeEvents) OrderPlaced(_ context.Context, o *models.Order) error {
	f.placed = append(f.placed, o)
	return f.err
}

// fakeCache is an in-memory ResponseCache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	return b, ok
}

func (f *fakeCache) Set(_ context.Context, key string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.data[key] = body
}

// testEnv wires every handler group to fresh fakes.
type testEnv struct {
	Products  *fakeProducts
	FAQs      *fakeFAQs
	Inquiries *fakeInquiries
	Orders    *fakeOrders
	Sessions  *fakeSessions
	Mailer    *fakeMailer
	Events    *fakeEvents
	Cache     *fakeCache

	Catalog *Catalog
	Site    *Site
	Forms   *Forms
	Cart    *Cart
	API     *API
}

// excludedNames is the catalog exclusion list used by the tests.
var excludedNames = []string{"Ground Cardamom", "Bay Leaf"}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rn, err := render.New(config.DefaultBranding(), "")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		Products:  &fakeProducts{},
		FAQs:      &fakeFAQs{},
		Inquiries: &fakeInquiries{},
		Orders:    &fakeOrders{},
		Sessions:  &fakeSessions{},
		Mailer:    &fakeMailer{},
		Events:    &fakeEvents{},
		Cache:     &fakeCache{},
	}
	env.Catalog = NewCatalog(env.Products, fakeResolver{}, excludedNames)
	env.Site = NewSite(rn, env.Sessions, env.Catalog, env.FAQs)
	env.Forms = NewForms(rn, env.Sessions, env.Inquiries, env.Mailer, "admin@spicehouse.local")
	env.Cart = NewCart(rn, env.Sessions, env.Products, env.Orders, env.Events)
	env.API = NewAPI(env.Catalog, env.Cache)
	return env
}

// withSession puts sess into the request context the way LoadSession does.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// postForm builds a form POST request.
func postForm(target string, values map[string]string) *http.Request {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "spicehouse")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "spicehouse")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "api:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})
	return client
}
