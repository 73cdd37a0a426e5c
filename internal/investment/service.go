package investment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/common"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=investment
type Repository interface {
	GetInvestment(ctx context.Context, id uuid.UUID) (*Investment, error)
	CreateInvestment(ctx context.Context, inv *Investment) error
	// DeleteInvestment removes the investment and its schedule. Deposits it
	// already produced stay in the ledger.
	DeleteInvestment(ctx context.Context, id uuid.UUID) error
	GetSchedule(ctx context.Context, investmentID uuid.UUID) (*Schedule, error)
}

// Registrar persists a schedule so the scheduler starts firing it.
type Registrar interface {
	Register(ctx context.Context, s *Schedule) error
}

type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, owner uuid.UUID, name string, iconID int) (*category.Category, error)
}

type DepositLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	repo       Repository
	scheduler  Registrar
	categories CategoryResolver
	deposits   DepositLister
}

func NewService(repo Repository, scheduler Registrar, categories CategoryResolver, deposits DepositLister) *Service {
	return &Service{repo: repo, scheduler: scheduler, categories: categories, deposits: deposits}
}

type CreateParams struct {
	Name                  string
	CategoryName          string
	IconID                int
	DownPaymentAmount     int64
	DownPaymentTimestamp  time.Time
	DepositAmount         int64
	MaxNumberOfDeposits   int
	DepositIntervalInDays int
}

type Summary struct {
	Investment    *Investment
	FirstFireTime time.Time
	LastFireTime  time.Time
	// Scheduled is false when the schedule could not be registered.
	Scheduled bool
}

func (p CreateParams) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	case p.DownPaymentAmount < 0:
		return fmt.Errorf("%w: down payment must not be negative", common.ErrInvalidInput)
	case p.DownPaymentTimestamp.IsZero():
		return fmt.Errorf("%w: down payment timestamp is required", common.ErrInvalidInput)
	case p.DepositAmount <= 0:
		return fmt.Errorf("%w: deposit amount must be positive", common.ErrInvalidInput)
	case p.MaxNumberOfDeposits < 1:
		return fmt.Errorf("%w: at least one deposit is required", common.ErrInvalidInput)
	case p.MaxNumberOfDeposits > MaxNumberOfDeposits:
		return fmt.Errorf("%w: at most %d deposits are allowed", common.ErrInvalidInput, MaxNumberOfDeposits)
	case p.DepositIntervalInDays < 1:
		return fmt.Errorf("%w: deposit interval must be at least one day", common.ErrInvalidInput)
	case p.DepositIntervalInDays > MaxDepositIntervalInDays:
		return fmt.Errorf("%w: deposit interval must not exceed %d days", common.ErrInvalidInput, MaxDepositIntervalInDays)
	}

	return nil
}

// Create stores an investment and registers its deposit schedule. A failed
// registration is logged and reported in the summary; the investment itself
// is still created.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, params CreateParams) (*Summary, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	cat, err := s.categories.ResolveOrCreate(ctx, owner, params.CategoryName, params.IconID)
	if err != nil {
		return nil, fmt.Errorf("resolving category: %w", err)
	}

	inv := &Investment{
		OwnerID:               owner,
		CategoryID:            cat.ID,
		Name:                  strings.TrimSpace(params.Name),
		DownPaymentAmount:     params.DownPaymentAmount,
		DownPaymentTimestamp:  params.DownPaymentTimestamp.UTC(),
		DepositAmount:         params.DepositAmount,
		MaxNumberOfDeposits:   params.MaxNumberOfDeposits,
		DepositIntervalInDays: params.DepositIntervalInDays,
	}
	if err := s.repo.CreateInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating investment: %w", err)
	}

	summary := &Summary{
		Investment:    inv,
		FirstFireTime: inv.FirstFireTime(),
		LastFireTime:  inv.LastFireTime(),
		Scheduled:     true,
	}

	if err := s.scheduler.Register(ctx, NewSchedule(inv)); err != nil {
		slog.Error("failed to register investment schedule",
			"investment", inv.ID, "error", fmt.Errorf("%w: %w", ErrSchedulingUnavailable, err))

		summary.Scheduled = false
	}

	return summary, nil
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Investment, error) {
	inv, err := s.repo.GetInvestment(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.OwnerID != owner {
		return nil, common.ErrAccessDenied
	}

	return inv, nil
}

// Delete stops future deposits and removes the investment.
func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}

	if err := s.repo.DeleteInvestment(ctx, id); err != nil {
		return fmt.Errorf("deleting investment: %w", err)
	}

	return nil
}

// Deposits lists the deposits an investment produced so far.
func (s *Service) Deposits(ctx context.Context, owner, id uuid.UUID) ([]*transaction.Transaction, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}

	return s.deposits.List(ctx, transaction.ListFilter{
		OwnerID:            owner,
		Kind:               new(transaction.KindDeposit),
		SourceInvestmentID: &id,
	})
}

// Schedule returns the persisted firing state of an investment, or nil when
// it was never registered.
func (s *Service) Schedule(ctx context.Context, owner, id uuid.UUID) (*Schedule, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}

	sched, err := s.repo.GetSchedule(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}

	return sched, err
}
