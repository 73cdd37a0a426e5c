package investment_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	httpinvestment "github.com/MrJamesThe3rd/pocket/internal/http/investment"
	"github.com/MrJamesThe3rd/pocket/internal/investment"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

type fixture struct {
	repo     *investment.MockRepository
	reg      *investment.MockRegistrar
	cats     *investment.MockCategoryResolver
	deposits *investment.MockDepositLister
	router   http.Handler
	owner    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     investment.NewMockRepository(ctrl),
		reg:      investment.NewMockRegistrar(ctrl),
		cats:     investment.NewMockCategoryResolver(ctrl),
		deposits: investment.NewMockDepositLister(ctrl),
		owner:    uuid.New(),
	}

	svc := investment.NewService(f.repo, f.reg, f.cats, f.deposits)

	r := chi.NewRouter()
	r.Use(api.RequireOwner)
	r.Route("/investments", httpinvestment.NewHandler(svc).Routes)
	f.router = r

	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(api.OwnerHeader, f.owner.String())
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

const createBody = `{"name":"Index fund","category_name":"Savings","icon_id":5,
	"down_payment_amount":10000,"down_payment_timestamp":"2026-01-01T09:00:00Z",
	"deposit_amount":1250,"max_number_of_deposits":3,"deposit_interval_in_days":7}`

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name          string
		registerErr   error
		wantScheduled bool
	}{
		{name: "Scheduled", wantScheduled: true},
		{name: "RegistrationFails", registerErr: errors.New("db down"), wantScheduled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cats.EXPECT().ResolveOrCreate(gomock.Any(), f.owner, "Savings", 5).
				Return(&category.Category{ID: uuid.New(), Name: "Savings"}, nil)
			f.repo.EXPECT().CreateInvestment(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, inv *investment.Investment) error {
					inv.ID = uuid.New()
					return nil
				})
			f.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(tt.registerErr)

			rec := f.do(http.MethodPost, "/investments/", createBody)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var resp struct {
				FirstFireTime time.Time `json:"first_fire_time"`
				LastFireTime  time.Time `json:"last_fire_time"`
				Scheduled     bool      `json:"scheduled"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			assert.Equal(t, tt.wantScheduled, resp.Scheduled)
			assert.Equal(t, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC), resp.FirstFireTime.UTC())
			assert.Equal(t, time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC), resp.LastFireTime.UTC())
		})
	}
}

func TestHandler_Deposits(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetInvestment(gomock.Any(), id).Return(&investment.Investment{ID: id, OwnerID: f.owner}, nil)
	f.deposits.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
		transaction.NewDeposit(f.owner, uuid.New(), id, "Index fund", 1250, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)),
	}, nil)

	rec := f.do(http.MethodGet, "/investments/"+id.String()+"/deposits", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		Kind               string    `json:"kind"`
		SourceInvestmentID uuid.UUID `json:"source_investment_id"`
		Date               string    `json:"date"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp, 1)
	assert.Equal(t, "deposit", resp[0].Kind)
	assert.Equal(t, id, resp[0].SourceInvestmentID)
	assert.Equal(t, "2026-01-01", resp[0].Date)
}

func TestHandler_Get_NotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetInvestment(gomock.Any(), id).Return(nil, investment.ErrNotFound)

	rec := f.do(http.MethodGet, "/investments/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Create_RejectsOversizedSchedule(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "IntervalOverflowsDuration",
			body: `{"name":"x","category_name":"Savings","down_payment_timestamp":"2026-01-01T09:00:00Z",
				"deposit_amount":100,"max_number_of_deposits":2,"deposit_interval_in_days":200000}`,
		},
		{
			name: "DepositCountTooLarge",
			body: `{"name":"x","category_name":"Savings","down_payment_timestamp":"2026-01-01T09:00:00Z",
				"deposit_amount":100,"max_number_of_deposits":2147483647,"deposit_interval_in_days":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/investments/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
