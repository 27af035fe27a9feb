// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the storefront HTTP handlers: catalog pages,
// the contact and registration forms, the session cart with checkout, and
// a small read-only JSON API over the catalog.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"spicehouse/internal/mail"
	"spicehouse/internal/middleware"
	"spicehouse/internal/models"
	"spicehouse/internal/render"
	"spicehouse/internal/session"
	"spicehouse/internal/store"
)

// ProductStore is the read side of the catalog used by the handlers.
type ProductStore interface {
	ListActive(ctx context.Context, f store.ProductFilter) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	Related(ctx context.Context, p *models.Product, limit int) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
}

// ImageResolver picks the image path for a product.
type ImageResolver interface {
	Resolve(ctx context.Context, name, category, imageURL string) (string, error)
}

// FAQLister lists the active FAQ entries.
type FAQLister interface {
	ListActive(ctx context.Context) ([]models.FAQ, error)
}

// InquiryStore records form submissions.
type InquiryStore interface {
	CreateRegistration(ctx context.Context, v *models.VisitorRegistration) error
	CreateContact(ctx context.Context, m *models.ContactMessage) error
}

// OrderStore persists orders placed at checkout.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
}

// SessionSaver persists session data, creating the session on first save.
type SessionSaver interface {
	Save(ctx context.Context, w http.ResponseWriter, r *http.Request, data *session.Data) error
}

// Mailer delivers admin notifications.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// OrderEvents announces placed orders to downstream consumers.
type OrderEvents interface {
	OrderPlaced(ctx context.Context, o *models.Order) error
}

// ResponseCache stores rendered JSON responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// base carries what every HTML handler group needs to render pages and
// keep the visitor's session.
type base struct {
	renderer *render.Renderer
	sessions SessionSaver
}

// currentSession returns the session loaded by the middleware, or a fresh
// one when the handler runs outside the middleware chain.
func currentSession(r *http.Request) *session.Data {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return sess
	}
	return session.New()
}

// page renders a template, moving any pending flashes from the session
// onto the page.
func (b *base) page(w http.ResponseWriter, r *http.Request, status int, name string, data *render.PageData) {
	sess := currentSession(r)
	if len(sess.Flashes) > 0 {
		data.Flashes = sess.PopFlashes()
		if err := b.sessions.Save(r.Context(), w, r, sess); err != nil {
			slog.Error("save session after flashes", "error", err)
		}
	}
	b.renderer.Status(w, r, status, name, data)
}

// redirect saves the session and sends a 303 to target.
func (b *base) redirect(w http.ResponseWriter, r *http.Request, sess *session.Data, target string) {
	if err := b.sessions.Save(r.Context(), w, r, sess); err != nil {
		slog.Error("save session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// notFound renders the 404 page.
func (b *base) notFound(w http.ResponseWriter, r *http.Request) {
	b.page(w, r, http.StatusNotFound, "not_found", &render.PageData{Title: "Not found"})
}

// serverError logs err and answers 500.
func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
