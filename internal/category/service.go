package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/common"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	FindCategory(ctx context.Context, owner uuid.UUID, name string, iconID int) (*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveOrCreate returns the owner's category with the given name and icon,
// creating it when it does not exist yet. Concurrent callers with the same key
// all get the same row.
func (s *Service) ResolveOrCreate(ctx context.Context, owner uuid.UUID, name string, iconID int) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", common.ErrInvalidInput)
	}

	c, err := s.repo.FindCategory(ctx, owner, name, iconID)
	if err == nil {
		return c, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("finding category: %w", err)
	}

	c = &Category{
		OwnerID: owner,
		Name:    name,
		IconID:  iconID,
	}

	err = s.repo.CreateCategory(ctx, c)
	if err == nil {
		return c, nil
	}

	if !errors.Is(err, ErrDuplicate) {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	slog.Debug("category created concurrently, re-reading", "owner", owner, "name", name, "icon", iconID)

	c, err = s.repo.FindCategory(ctx, owner, name, iconID)
	if err != nil {
		return nil, fmt.Errorf("re-reading category: %w", err)
	}

	return c, nil
}

// Get re-fetches a category by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}
