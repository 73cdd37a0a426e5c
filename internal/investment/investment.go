package investment

import (
	"time"

	"github.com/google/uuid"
)

// Upper bounds on a schedule. They keep the last fire time inside the range
// time.Time and the store can represent.
const (
	MaxDepositIntervalInDays = 3650
	MaxNumberOfDeposits      = 1200
)

// Investment produces a fixed number of deposits, one every
// DepositIntervalInDays, the first at DownPaymentTimestamp.
type Investment struct {
	ID                    uuid.UUID
	OwnerID               uuid.UUID
	CategoryID            uuid.UUID
	Name                  string
	DownPaymentAmount     int64 // Amount in cents
	DownPaymentTimestamp  time.Time
	DepositAmount         int64 // Amount in cents
	MaxNumberOfDeposits   int
	DepositIntervalInDays int
	CreatedAt             time.Time
}

// FireTime returns the planned time of the n-th deposit, counting from zero
// at DownPaymentTimestamp.
func (i *Investment) FireTime(n int) time.Time {
	return i.DownPaymentTimestamp.AddDate(0, 0, n*i.DepositIntervalInDays)
}

func (i *Investment) FirstFireTime() time.Time {
	return i.DownPaymentTimestamp
}

func (i *Investment) LastFireTime() time.Time {
	return i.FireTime(i.MaxNumberOfDeposits - 1)
}

// Schedule is the persisted firing state of one investment.
type Schedule struct {
	InvestmentID   uuid.UUID
	NextFireTime   time.Time
	RemainingCount int
	IntervalDays   int
	UpdatedAt      time.Time
}

func NewSchedule(inv *Investment) *Schedule {
	return &Schedule{
		InvestmentID:   inv.ID,
		NextFireTime:   inv.DownPaymentTimestamp,
		RemainingCount: inv.MaxNumberOfDeposits,
		IntervalDays:   inv.DepositIntervalInDays,
	}
}

// after returns the occurrence one interval past t.
func (s *Schedule) after(t time.Time) time.Time {
	return t.AddDate(0, 0, s.IntervalDays)
}

func (s *Schedule) Done() bool {
	return s.RemainingCount <= 0
}

func (s *Schedule) Due(now time.Time) bool {
	return !s.Done() && !now.Before(s.NextFireTime)
}

// Advance records a fire at now. A fire lagging its planned time by more than
// misfireThreshold counts as a catch-up: the missed occurrences are dropped
// and the cadence restarts from now. It reports whether the fire was a
// catch-up.
func (s *Schedule) Advance(now time.Time, misfireThreshold time.Duration) bool {
	misfired := now.Sub(s.NextFireTime) > misfireThreshold

	s.RemainingCount--

	if misfired {
		s.NextFireTime = s.after(now)
	} else {
		s.NextFireTime = s.after(s.NextFireTime)
	}

	return misfired
}
