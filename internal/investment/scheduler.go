package investment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/notify"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// ScheduleStore persists schedules and opens firing transactions.
type ScheduleStore interface {
	SaveSchedule(ctx context.Context, s *Schedule) error
	BeginFiring(ctx context.Context) (FiringTx, error)
}

// FiringTx is the store transaction of one firing. The deposit, its budget
// adjustment and the schedule advance commit together.
type FiringTx interface {
	transaction.Tx

	// ClaimDueSchedule locks the earliest schedule due at now that no other
	// worker holds and that is not in skip. It returns nil when there is none.
	ClaimDueSchedule(ctx context.Context, now time.Time, skip []uuid.UUID) (*Schedule, error)
	GetInvestment(ctx context.Context, id uuid.UUID) (*Investment, error)
	SaveSchedule(ctx context.Context, s *Schedule) error
}

type Ledger interface {
	Record(ctx context.Context, tx transaction.Tx, t *transaction.Transaction) error
}

type CategoryGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

type SchedulerConfig struct {
	PollInterval     time.Duration
	MisfireThreshold time.Duration
	BatchSize        int
}

type Scheduler struct {
	store      ScheduleStore
	ledger     Ledger
	categories CategoryGetter
	notifier   notify.Notifier
	cfg        SchedulerConfig
	now        func() time.Time
	wake       chan struct{}
}

type Option func(*Scheduler)

// WithClock replaces time.Now as the scheduler's clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func NewScheduler(store ScheduleStore, ledger Ledger, categories CategoryGetter, notifier notify.Notifier, cfg SchedulerConfig, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:      store,
		ledger:     ledger,
		categories: categories,
		notifier:   notifier,
		cfg:        cfg,
		now:        time.Now,
		wake:       make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register persists a schedule and nudges the poll loop so a schedule that is
// already due fires without waiting for the next tick.
func (s *Scheduler) Register(ctx context.Context, sched *Schedule) error {
	if err := s.store.SaveSchedule(ctx, sched); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return nil
}

// Run polls for due schedules until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "scheduler started", "poll_interval", s.cfg.PollInterval)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := s.RunDue(ctx); err != nil && ctx.Err() == nil {
			slog.ErrorContext(ctx, "scheduler poll failed", "error", err)
		}

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "scheduler stopped")
			return nil
		case <-ticker.C:
		case <-s.wake:
		}
	}
}

// RunDue fires schedules due at the current time, at most BatchSize per call,
// and returns how many deposits were created. Schedules held by another
// worker are passed over. A failed firing is logged and left for the next poll.
func (s *Scheduler) RunDue(ctx context.Context) (int, error) {
	var failed []uuid.UUID

	fired := 0

	for fired+len(failed) < s.cfg.BatchSize && ctx.Err() == nil {
		id, err := s.fireNext(ctx, failed)
		if errors.Is(err, errClaim) {
			return fired, err
		}

		if err != nil {
			slog.ErrorContext(ctx, "investment firing failed", "investment", id, "error", err)

			failed = append(failed, id)

			continue
		}

		if id == uuid.Nil {
			break
		}

		fired++
	}

	return fired, nil
}

var errClaim = errors.New("claiming due schedule")

// fireNext claims one due schedule and fires it. It returns uuid.Nil when
// nothing is due.
func (s *Scheduler) fireNext(ctx context.Context, skip []uuid.UUID) (uuid.UUID, error) {
	tx, err := s.store.BeginFiring(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: begin firing: %w", errClaim, err)
	}
	defer tx.Rollback()

	now := s.now()

	sched, err := tx.ClaimDueSchedule(ctx, now, skip)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", errClaim, err)
	}

	if sched == nil {
		return uuid.Nil, nil
	}

	id := sched.InvestmentID

	inv, err := tx.GetInvestment(ctx, id)
	if err != nil {
		return id, fmt.Errorf("getting investment: %w", err)
	}

	cat, err := s.categories.Get(ctx, inv.CategoryID)
	if err != nil {
		return id, fmt.Errorf("getting category %s: %w", inv.CategoryID, err)
	}

	deposit := transaction.NewDeposit(inv.OwnerID, cat.ID, inv.ID, inv.Name, inv.DepositAmount, now)
	if err := s.ledger.Record(ctx, tx, deposit); err != nil {
		return id, fmt.Errorf("recording deposit: %w", err)
	}

	planned := sched.NextFireTime
	misfired := sched.Advance(now, s.cfg.MisfireThreshold)

	if err := tx.SaveSchedule(ctx, sched); err != nil {
		return id, fmt.Errorf("advancing schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return id, fmt.Errorf("commit firing: %w", err)
	}

	if misfired {
		slog.WarnContext(ctx, "investment fired late, missed occurrences dropped",
			"investment", inv.ID, "planned", planned, "fired", now)
	}

	slog.InfoContext(ctx, "investment deposit credited",
		"investment", inv.ID, "deposit", deposit.ID, "amount", deposit.Amount, "remaining", sched.RemainingCount)

	s.notify(ctx, inv, cat, deposit, sched)

	return id, nil
}

func (s *Scheduler) notify(ctx context.Context, inv *Investment, cat *category.Category, deposit *transaction.Transaction, sched *Schedule) {
	amount := decimal.New(deposit.Amount, -2).StringFixed(2)

	msg := notify.Message{
		Title: inv.Name,
		Body:  fmt.Sprintf("%s credited to %s", amount, cat.Name),
		Data: map[string]string{
			"investment_id":  inv.ID.String(),
			"transaction_id": deposit.ID.String(),
			"amount":         amount,
			"remaining":      fmt.Sprint(sched.RemainingCount),
		},
	}

	if err := s.notifier.NotifyDevices(ctx, inv.OwnerID, msg); err != nil {
		slog.ErrorContext(ctx, "failed to notify devices", "owner", inv.OwnerID, "investment", inv.ID, "error", err)
	}
}
