package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/common"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// Fallback category for imported rows no rule matches.
const (
	DefaultCategoryName = "Uncategorized"
	DefaultIconID       = 0
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the most specific rule whose pattern occurs in
	// concept, or nil when none does.
	FindMatch(ctx context.Context, owner uuid.UUID, concept string) (*Rule, error)
	CreateRule(ctx context.Context, r *Rule) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the rule matching concept, or nil when none matches.
func (s *Service) Suggest(ctx context.Context, owner uuid.UUID, concept string) (*Rule, error) {
	return s.repo.FindMatch(ctx, owner, concept)
}

// Learn remembers that concepts containing pattern belong to the given category.
func (s *Service) Learn(ctx context.Context, owner uuid.UUID, pattern, categoryName string, iconID int) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	categoryName = strings.TrimSpace(categoryName)

	if pattern == "" || categoryName == "" {
		return nil, fmt.Errorf("%w: pattern and category are required", common.ErrInvalidInput)
	}

	r := &Rule{OwnerID: owner, RawPattern: pattern, CategoryName: categoryName, IconID: iconID}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return r, nil
}

// Categorize fills the category of rows that have none, from the owner's
// rules or the default category. Rows with a category are left untouched.
func (s *Service) Categorize(ctx context.Context, owner uuid.UUID, params []transaction.ExpenseParams) error {
	for i := range params {
		if params[i].CategoryName != "" {
			continue
		}

		r, err := s.repo.FindMatch(ctx, owner, params[i].Concept)
		if err != nil {
			return fmt.Errorf("matching %q: %w", params[i].Concept, err)
		}

		if r == nil {
			params[i].CategoryName, params[i].IconID = DefaultCategoryName, DefaultIconID
			continue
		}

		params[i].CategoryName, params[i].IconID = r.CategoryName, r.IconID
	}

	return nil
}
