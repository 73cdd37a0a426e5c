package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/investment"
	txstore "github.com/MrJamesThe3rd/pocket/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectInvestmentColumns = `
	id, owner_id, category_id, name, down_payment_amount, down_payment_timestamp,
	deposit_amount, max_number_of_deposits, deposit_interval_in_days, created_at
`

func getInvestment(ctx context.Context, q database.Querier, id uuid.UUID) (*investment.Investment, error) {
	query := `SELECT ` + selectInvestmentColumns + ` FROM investments WHERE id = $1`

	var inv investment.Investment

	err := q.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.OwnerID, &inv.CategoryID, &inv.Name, &inv.DownPaymentAmount, &inv.DownPaymentTimestamp,
		&inv.DepositAmount, &inv.MaxNumberOfDeposits, &inv.DepositIntervalInDays, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, investment.ErrNotFound
		}

		return nil, fmt.Errorf("getting investment: %w", err)
	}

	inv.DownPaymentTimestamp = inv.DownPaymentTimestamp.UTC()

	return &inv, nil
}

func (s *Store) GetInvestment(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	return getInvestment(ctx, s.db, id)
}

func (s *Store) CreateInvestment(ctx context.Context, inv *investment.Investment) error {
	query := `
		INSERT INTO investments (owner_id, category_id, name, down_payment_amount, down_payment_timestamp,
			deposit_amount, max_number_of_deposits, deposit_interval_in_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		inv.OwnerID,
		inv.CategoryID,
		inv.Name,
		inv.DownPaymentAmount,
		inv.DownPaymentTimestamp,
		inv.DepositAmount,
		inv.MaxNumberOfDeposits,
		inv.DepositIntervalInDays,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating investment: %w", err)
	}

	return nil
}

// DeleteInvestment removes the investment; its schedule goes with it through
// ON DELETE CASCADE. Deposits keep their source_investment_id.
func (s *Store) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting investment: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return investment.ErrNotFound
	}

	return nil
}

const selectScheduleColumns = `investment_id, next_fire_time, remaining_count, interval_days, updated_at`

func scanSchedule(row *sql.Row) (*investment.Schedule, error) {
	var sched investment.Schedule
	if err := row.Scan(&sched.InvestmentID, &sched.NextFireTime, &sched.RemainingCount, &sched.IntervalDays, &sched.UpdatedAt); err != nil {
		return nil, err
	}

	sched.NextFireTime = sched.NextFireTime.UTC()

	return &sched, nil
}

func (s *Store) GetSchedule(ctx context.Context, investmentID uuid.UUID) (*investment.Schedule, error) {
	query := `SELECT ` + selectScheduleColumns + ` FROM investment_schedules WHERE investment_id = $1`

	sched, err := scanSchedule(s.db.QueryRowContext(ctx, query, investmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, investment.ErrNotFound
		}

		return nil, fmt.Errorf("getting schedule: %w", err)
	}

	return sched, nil
}

func saveSchedule(ctx context.Context, q database.Querier, sched *investment.Schedule) error {
	query := `
		INSERT INTO investment_schedules (investment_id, next_fire_time, remaining_count, interval_days, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (investment_id) DO UPDATE
		SET next_fire_time = EXCLUDED.next_fire_time,
			remaining_count = EXCLUDED.remaining_count,
			interval_days = EXCLUDED.interval_days,
			updated_at = NOW()
		RETURNING updated_at`

	err := q.QueryRowContext(ctx, query,
		sched.InvestmentID,
		sched.NextFireTime,
		sched.RemainingCount,
		sched.IntervalDays,
	).Scan(&sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	return nil
}

func (s *Store) SaveSchedule(ctx context.Context, sched *investment.Schedule) error {
	return saveSchedule(ctx, s.db, sched)
}

// firingTx extends the ledger transaction with the schedule operations of a firing.
type firingTx struct {
	*txstore.Tx
}

func (s *Store) BeginFiring(ctx context.Context) (investment.FiringTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning firing tx: %w", err)
	}

	return &firingTx{Tx: txstore.Wrap(dbTx)}, nil
}

func (f *firingTx) ClaimDueSchedule(ctx context.Context, now time.Time, skip []uuid.UUID) (*investment.Schedule, error) {
	if skip == nil {
		skip = []uuid.UUID{}
	}

	query := `SELECT ` + selectScheduleColumns + `
		FROM investment_schedules
		WHERE remaining_count > 0 AND next_fire_time <= $1 AND investment_id <> ALL($2)
		ORDER BY next_fire_time ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`

	sched, err := scanSchedule(f.SQL().QueryRowContext(ctx, query, now, skip))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("claiming due schedule: %w", err)
	}

	return sched, nil
}

func (f *firingTx) GetInvestment(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	return getInvestment(ctx, f.SQL(), id)
}

func (f *firingTx) SaveSchedule(ctx context.Context, sched *investment.Schedule) error {
	return saveSchedule(ctx, f.SQL(), sched)
}
