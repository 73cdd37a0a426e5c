package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, owner uuid.UUID, concept string) (*matching.Rule, error) {
	query := `
		SELECT id, owner_id, raw_pattern, category_name, icon_id, created_at
		FROM category_rules
		WHERE owner_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var r matching.Rule

	err := s.db.QueryRowContext(ctx, query, owner, concept).Scan(
		&r.ID, &r.OwnerID, &r.RawPattern, &r.CategoryName, &r.IconID, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &r, nil
}

func (s *Store) CreateRule(ctx context.Context, r *matching.Rule) error {
	query := `
		INSERT INTO category_rules (owner_id, raw_pattern, category_name, icon_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.OwnerID, r.RawPattern, r.CategoryName, r.IconID).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
