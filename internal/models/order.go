// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the processing state of an order. Any status may be set
// from any other; no transitions are enforced.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order records a visitor's intent to buy the contents of their cart.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`

	// Items is populated by store methods that load the order lines.
	Items []OrderItem `json:"items,omitempty"`
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%s - %s (%s)", o.ID, o.Name, o.Status)
}

// Total sums the captured line prices. Lines without a price count as zero.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// OrderItem is one product line of an order. Price is the unit price
// captured when the order was placed.
type OrderItem struct {
	ID          uuid.UUID           `json:"id"`
	OrderID     uuid.UUID           `json:"order_id"`
	ProductID   uuid.UUID           `json:"product_id"`
	ProductName string              `json:"product_name,omitempty"`
	Quantity    int                 `json:"quantity"`
	Price       decimal.NullDecimal `json:"price"`
}

// Subtotal returns price × quantity, or zero when no price was captured.
func (it *OrderItem) Subtotal() decimal.Decimal {
	if !it.Price.Valid {
		return decimal.Zero
	}
	return it.Price.Decimal.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
