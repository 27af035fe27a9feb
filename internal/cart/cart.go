// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cart implements the session shopping cart: a map of product IDs
// to quantities, the priced summary shown on the cart page, and checkout
// into a pending order.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spicehouse/internal/models"
)

// ErrEmpty is returned by Checkout when the cart holds no known products.
var ErrEmpty = errors.New("cart is empty")

// Cart maps product IDs to quantities. The zero value is not usable for
// writes; use New or make.
type Cart map[uuid.UUID]int

// New returns an empty cart.
func New() Cart {
	return make(Cart)
}

// Add increments the quantity of a product by one.
func (c Cart) Add(id uuid.UUID) {
	c[id]++
}

// Remove deletes a product from the cart regardless of its quantity.
func (c Cart) Remove(id uuid.UUID) {
	delete(c, id)
}

// Count returns the total number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, q := range c {
		if q > 0 {
			n += q
		}
	}
	return n
}

// IDs returns the product IDs in the cart in a stable order.
func (c Cart) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c))
	for id, q := range c {
		if q > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// Line is one product row of a priced cart.
type Line struct {
	Product  *models.Product
	Quantity int
	Subtotal decimal.Decimal
}

// Summary is the priced view of a cart.
type Summary struct {
	Lines []Line
	Total decimal.Decimal
}

// Empty reports whether the summary has no lines.
func (s Summary) Empty() bool {
	return len(s.Lines) == 0
}

// Build prices a cart against the given products. IDs missing from
// products are skipped and a product without a price contributes zero.
// Lines are ordered by product name.
func Build(c Cart, products map[uuid.UUID]*models.Product) Summary {
	s := Summary{Total: decimal.Zero}
	for _, id := range c.IDs() {
		p, ok := products[id]
		if !ok || p == nil {
			continue
		}
		qty := c[id]
		sub := decimal.Zero
		if p.Price.Valid {
			sub = p.Price.Decimal.Mul(decimal.NewFromInt(int64(qty)))
		}
		s.Lines = append(s.Lines, Line{Product: p, Quantity: qty, Subtotal: sub})
		s.Total = s.Total.Add(sub)
	}
	sort.SliceStable(s.Lines, func(i, j int) bool {
		return s.Lines[i].Product.Name < s.Lines[j].Product.Name
	})
	return s
}

// OrderItems converts the summary into order items capturing each
// product's current price.
func (s Summary) OrderItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, models.OrderItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Price:       l.Product.Price,
		})
	}
	return items
}

// ProductLookup loads products by ID.
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
}

// OrderCreator persists an order together with its items.
type OrderCreator interface {
	Create(ctx context.Context, o *models.Order) error
}

// Load prices a cart by fetching its products.
func Load(ctx context.Context, c Cart, products ProductLookup) (Summary, error) {
	if len(c) == 0 {
		return Summary{Total: decimal.Zero}, nil
	}
	found, err := products.FindByIDs(ctx, c.IDs())
	if err != nil {
		return Summary{}, fmt.Errorf("load cart products: %w", err)
	}
	return Build(c, found), nil
}

// Checkout records the cart as a pending order for the given customer and
// returns it. The caller clears the cart after a successful checkout.
func Checkout(ctx context.Context, c Cart, customer models.Order, products ProductLookup, orders OrderCreator) (*models.Order, error) {
	summary, err := Load(ctx, c, products)
	if err != nil {
		return nil, err
	}
	if summary.Empty() {
		return nil, ErrEmpty
	}

	o := customer
	o.Status = models.OrderStatusPending
	o.Items = summary.OrderItems()
	if err := orders.Create(ctx, &o); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &o, nil
}
