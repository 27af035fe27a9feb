// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spicehouse/internal/cart"
	"spicehouse/internal/models"
	"spicehouse/internal/render"
	"spicehouse/internal/session"
)

// Flash messages shown by the cart handlers.
const (
	msgCartEmpty   = "Your cart is empty."
	msgOrderPlaced = "Thank you! Your order %s has been placed."
)

// Cart groups handlers for the session cart and checkout.
type Cart struct {
	base
	products ProductStore
	orders   OrderStore
	events   OrderEvents
}

// NewCart creates a new Cart handler group.
func NewCart(renderer *render.Renderer, sessions SessionSaver, products ProductStore, orders OrderStore, events OrderEvents) *Cart {
	return &Cart{
		base:     base{renderer: renderer, sessions: sessions},
		products: products,
		orders:   orders,
		events:   events,
	}
}

// View renders the priced cart with the checkout form.
func (c *Cart) View(w http.ResponseWriter, r *http.Request) {
	summary, err := cart.Load(r.Context(), currentSession(r).Cart, c.products)
	if err != nil {
		serverError(w, "load cart", err)
		return
	}

	c.page(w, r, http.StatusOK, "cart", &render.PageData{
		Title:   "Cart",
		Section: "cart",
		Data:    map[string]any{"Summary": summary},
	})
}

// Add puts one unit of an active product into the cart and sends the
// visitor back to the page they came from.
func (c *Cart) Add(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		c.notFound(w, r)
		return
	}

	p, err := c.products.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, "find product", err)
		return
	}
	if p == nil || !p.IsActive {
		c.notFound(w, r)
		return
	}

	sess := currentSession(r)
	if sess.Cart == nil {
		sess.Cart = cart.New()
	}
	sess.Cart.Add(p.ID)
	c.redirect(w, r, sess, backTo(r, "/products"))
}

// Remove drops a product from the cart.
func (c *Cart) Remove(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if id, err := uuid.Parse(chi.URLParam(r, "id")); err == nil {
		sess.Cart.Remove(id)
	}
	c.redirect(w, r, sess, "/cart")
}

// Checkout records the cart as a pending order, clears the cart and
// announces the order. Invalid details or an empty cart only flash an
// error.
func (c *Cart) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	form := checkoutForm{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Address: formValue(r, "address"),
	}

	if sess.Cart.Count() == 0 {
		sess.AddFlash(session.FlashError, msgCartEmpty)
		c.redirect(w, r, sess, "/cart")
		return
	}
	if errs := validateForm(form); errs != nil {
		for _, e := range errs {
			sess.AddFlash(session.FlashError, e.Message)
		}
		c.redirect(w, r, sess, "/cart")
		return
	}

	ctx := r.Context()
	customer := models.Order{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
	}
	order, err := cart.Checkout(ctx, sess.Cart, customer, c.products, c.orders)
	if errors.Is(err, cart.ErrEmpty) {
		// Every product in the cart has since been removed from the catalog.
		sess.Cart = cart.New()
		sess.AddFlash(session.FlashError, msgCartEmpty)
		c.redirect(w, r, sess, "/cart")
		return
	}
	if err != nil {
		serverError(w, "checkout", err)
		return
	}

	slog.Info("order placed", "order_id", order.ID, "items", len(order.Items), "total", order.Total().StringFixed(2))
	if err := c.events.OrderPlaced(ctx, order); err != nil {
		slog.Error("publish order placed", "order_id", order.ID, "error", err)
	}

	sess.Cart = cart.New()
	sess.AddFlash(session.FlashSuccess, fmt.Sprintf(msgOrderPlaced, orderRef(order.ID)))
	c.redirect(w, r, sess, "/cart")
}

// backTo returns the path of a same-site Referer, or fallback. Referers
// pointing at another host are ignored so the redirect cannot leave the
// site.
func backTo(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != r.Host {
		return fallback
	}
	if u.Path == "" || u.Path[0] != '/' {
		return fallback
	}
	// "//host" and "/\host" are read by browsers as another site.
	if strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return fallback
	}
	return u.RequestURI()
}

// orderRef formats an order ID for display.
func orderRef(id uuid.UUID) string {
	return fmt.Sprintf("#%s", id.String()[:8])
}
