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

// FAQStore handles FAQ database operations.
type FAQStore struct {
	db *sql.DB
}

// NewFAQStore creates a new FAQStore.
func NewFAQStore(db *sql.DB) *FAQStore {
	return &FAQStore{db: db}
}

// ListActive returns active FAQ entries ordered by position, then creation.
func (s *FAQStore) ListActive(ctx context.Context) ([]models.FAQ, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, is_active, position, created_at
		FROM faqs
		WHERE is_active = TRUE
		ORDER BY position, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()

	var items []models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.IsActive, &f.Position, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// Create inserts a new FAQ entry and fills in its ID and timestamp.
func (s *FAQStore) Create(ctx context.Context, f *models.FAQ) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO faqs (question, answer, is_active, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, f.Question, f.Answer, f.IsActive, f.Position).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create faq: %w", err)
	}
	return nil
}
