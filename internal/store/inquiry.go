// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"spicehouse/internal/models"
)

// InquiryStore persists visitor registrations and contact messages.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore creates a new InquiryStore.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// CreateRegistration inserts a visitor registration.
func (s *InquiryStore) CreateRegistration(ctx context.Context, v *models.VisitorRegistration) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO visitor_registrations (name, email, phone, company, country, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, v.Name, v.Email, v.Phone, v.Company, v.Country, v.Message).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// RecentRegistrations returns the newest registrations first.
func (s *InquiryStore) RecentRegistrations(ctx context.Context, limit int) ([]models.VisitorRegistration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, company, country, message, created_at
		FROM visitor_registrations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var items []models.VisitorRegistration
	for rows.Next() {
		var v models.VisitorRegistration
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Company, &v.Country, &v.Message, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// CreateContact inserts a contact message.
func (s *InquiryStore) CreateContact(ctx context.Context, m *models.ContactMessage) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Phone, m.Message).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}
