package investment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocket/internal/investment"
)

var t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestInvestment_FireTimes(t *testing.T) {
	tests := []struct {
		name      string
		inv       investment.Investment
		wantFirst time.Time
		wantLast  time.Time
	}{
		{
			name:      "Weekly",
			inv:       investment.Investment{DownPaymentTimestamp: t0, MaxNumberOfDeposits: 4, DepositIntervalInDays: 7},
			wantFirst: t0,
			wantLast:  t0.AddDate(0, 0, 21),
		},
		{
			name:      "SingleDeposit",
			inv:       investment.Investment{DownPaymentTimestamp: t0, MaxNumberOfDeposits: 1, DepositIntervalInDays: 30},
			wantFirst: t0,
			wantLast:  t0,
		},
		{
			name: "LargestSchedule",
			inv: investment.Investment{
				DownPaymentTimestamp:  t0,
				MaxNumberOfDeposits:   investment.MaxNumberOfDeposits,
				DepositIntervalInDays: investment.MaxDepositIntervalInDays,
			},
			wantFirst: t0,
			wantLast:  t0.AddDate(0, 0, (investment.MaxNumberOfDeposits-1)*investment.MaxDepositIntervalInDays),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFirst, tt.inv.FirstFireTime())
			assert.Equal(t, tt.wantLast, tt.inv.LastFireTime())
			assert.True(t, tt.inv.LastFireTime().After(tt.inv.FirstFireTime()) || tt.inv.MaxNumberOfDeposits == 1)
		})
	}
}

func TestSchedule_Advance(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		wantNext     time.Time
		wantMisfired bool
	}{
		{
			name:     "OnTime",
			now:      t0,
			wantNext: t0.Add(24 * time.Hour),
		},
		{
			name:     "WithinThreshold",
			now:      t0.Add(40 * time.Second),
			wantNext: t0.Add(24 * time.Hour),
		},
		{
			name:         "MissedThreeIntervals",
			now:          t0.Add(3*24*time.Hour + time.Hour),
			wantNext:     t0.Add(4*24*time.Hour + time.Hour),
			wantMisfired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &investment.Schedule{NextFireTime: t0, RemainingCount: 5, IntervalDays: 1}

			misfired := s.Advance(tt.now, time.Minute)

			assert.Equal(t, tt.wantMisfired, misfired)
			assert.Equal(t, tt.wantNext, s.NextFireTime)
			assert.Equal(t, 4, s.RemainingCount)
		})
	}
}

func TestSchedule_AdvanceLongInterval(t *testing.T) {
	s := &investment.Schedule{NextFireTime: t0, RemainingCount: 2, IntervalDays: investment.MaxDepositIntervalInDays}

	assert.False(t, s.Advance(t0, time.Minute))
	assert.Equal(t, t0.AddDate(0, 0, investment.MaxDepositIntervalInDays), s.NextFireTime)
	assert.True(t, s.NextFireTime.After(t0))
}

func TestSchedule_Due(t *testing.T) {
	s := &investment.Schedule{NextFireTime: t0, RemainingCount: 1, IntervalDays: 1}

	assert.False(t, s.Due(t0.Add(-time.Second)))
	assert.True(t, s.Due(t0))

	s.RemainingCount = 0
	assert.False(t, s.Due(t0.Add(time.Hour)))
	assert.True(t, s.Done())
}
