// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events publishes domain events to RabbitMQ so that fulfilment
// can happen outside the web process. Publishing is optional: without an
// AMQP URL the Discard publisher is used.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"spicehouse/internal/models"
)

// TypeOrderPlaced is the event type of OrderPlaced messages.
const TypeOrderPlaced = "order.placed"

// OrderPlaced is the JSON payload published after checkout.
type OrderPlaced struct {
	Type     string      `json:"type"`
	OrderID  uuid.UUID   `json:"order_id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Items    []OrderLine `json:"items"`
	Total    string      `json:"total"`
	PlacedAt time.Time   `json:"placed_at"`
}

// OrderLine is one item of an OrderPlaced event. Price is empty for
// products without a price.
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price,omitempty"`
}

// NewOrderPlaced builds the event for a recorded order.
func NewOrderPlaced(o *models.Order) OrderPlaced {
	ev := OrderPlaced{
		Type:     TypeOrderPlaced,
		OrderID:  o.ID,
		Name:     o.Name,
		Email:    o.Email,
		Phone:    o.Phone,
		Total:    o.Total().StringFixed(2),
		PlacedAt: o.CreatedAt,
	}
	for _, it := range o.Items {
		line := OrderLine{ProductID: it.ProductID, Name: it.ProductName, Quantity: it.Quantity}
		if it.Price.Valid {
			line.Price = it.Price.Decimal.StringFixed(2)
		}
		ev.Items = append(ev.Items, line)
	}
	return ev
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends events to a durable queue on the default exchange.
type Publisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    channel
	queue string
}

// Dial connects to RabbitMQ and declares the durable queue.
func Dial(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", queue, err)
	}

	slog.Info("amqp connected", "queue", q.Name)
	return &Publisher{conn: conn, ch: ch, queue: q.Name}, nil
}

// OrderPlaced publishes the order.placed event for o.
func (p *Publisher) OrderPlaced(ctx context.Context, o *models.Order) error {
	body, err := json.Marshal(NewOrderPlaced(o))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    o.ID.String(),
		Type:         TypeOrderPlaced,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", TypeOrderPlaced, err)
	}
	slog.Info("order event published", "order_id", o.ID, "queue", p.queue)
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Discard drops every event. Used when AMQP is not configured.
type Discard struct{}

// OrderPlaced logs the order at debug level and returns nil.
func (Discard) OrderPlaced(_ context.Context, o *models.Order) error {
	slog.Debug("events disabled, order event dropped", "order_id", o.ID)
	return nil
}
