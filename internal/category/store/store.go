package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, owner uuid.UUID, name string, iconID int) (*category.Category, error) {
	query := `
		SELECT id, owner_id, name, icon_id, created_at
		FROM categories
		WHERE owner_id = $1 AND name = $2 AND icon_id = $3`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, owner, name, iconID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("finding category: %w", err)
	}

	return c, nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `
		SELECT id, owner_id, name, icon_id, created_at
		FROM categories
		WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (owner_id, name, icon_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, c.OwnerID, c.Name, c.IconID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return category.ErrDuplicate
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func scanCategory(row *sql.Row) (*category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.IconID, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}
