// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VisitorRegistration is an inquiry left through the home page
// registration form.
type VisitorRegistration struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   *string   `json:"company,omitempty"`
	Country   *string   `json:"country,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *VisitorRegistration) String() string {
	return fmt.Sprintf("%s <%s>", v.Name, v.Email)
}

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Preview returns the first 50 characters of the message, with an
// ellipsis when truncated.
func (m *ContactMessage) Preview() string {
	r := []rune(m.Message)
	if len(r) <= 50 {
		return m.Message
	}
	return string(r[:50]) + "..."
}
