// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session provides Valkey-backed HTTP session management.
// Sessions are identified by a secure cookie and stored as JSON in Valkey
// with automatic TTL expiry. A session carries the visitor's cart and any
// pending flash messages.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"spicehouse/internal/cart"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "sh_session"

	// DefaultTTL is how long a session lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Flash kinds used by the templates for styling.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Data holds the session payload stored in Valkey.
type Data struct {
	Cart      cart.Cart `json:"cart"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	id string // Valkey key suffix; empty until the session is stored
}

// New returns empty session data with an initialized cart.
func New() *Data {
	return &Data{Cart: cart.New()}
}

// ID returns the session identifier, or "" for an unsaved session.
func (d *Data) ID() string {
	return d.id
}

// AddFlash queues a message for the next rendered page.
func (d *Data) AddFlash(kind, message string) {
	d.Flashes = append(d.Flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes returns and clears the queued flash messages.
func (d *Data) PopFlashes() []Flash {
	f := d.Flashes
	d.Flashes = nil
	return f
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// When secure is true the cookie is only sent over HTTPS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// Create generates a new session, stores it in Valkey, and sets the
// session cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()
	if data.Cart == nil {
		data.Cart = cart.New()
	}

	if err := s.put(ctx, id, data); err != nil {
		return "", err
	}
	data.id = id
	s.setCookie(w, id)

	return id, nil
}

// Get retrieves session data from Valkey using the session ID from the
// request cookie. Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	if data.Cart == nil {
		data.Cart = cart.New()
	}
	data.id = cookie.Value

	return &data, nil
}

// Update replaces the session data in Valkey without changing the session
// ID or cookie. Resets the TTL.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	id := data.id
	if id == "" {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			return fmt.Errorf("session update: no cookie")
		}
		id = cookie.Value
	}
	if err := s.put(ctx, id, data); err != nil {
		return err
	}
	data.id = id
	return nil
}

// Save persists data, creating the session if it was never stored before.
// The cookie is re-issued on every save so its lifetime follows the
// Valkey TTL for active visitors.
func (s *Store) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, data *Data) error {
	if data.id == "" {
		_, err := s.Create(ctx, w, data)
		return err
	}
	if err := s.Update(ctx, r, data); err != nil {
		return err
	}
	s.setCookie(w, data.id)
	return nil
}

// setCookie writes the session cookie with a MaxAge matching the TTL.
func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
}

func (s *Store) put(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
