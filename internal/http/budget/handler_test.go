package budget_test

import (
	"encoding/json"
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

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	httpbudget "github.com/MrJamesThe3rd/pocket/internal/http/budget"
)

type fixture struct {
	repo   *budget.MockRepository
	tx     *budget.MockTx
	cats   *budget.MockCategoryResolver
	router http.Handler
	owner  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  budget.NewMockRepository(ctrl),
		tx:    budget.NewMockTx(ctrl),
		cats:  budget.NewMockCategoryResolver(ctrl),
		owner: uuid.New(),
	}

	r := chi.NewRouter()
	r.Use(api.RequireOwner)
	r.Route("/budgets", httpbudget.NewHandler(budget.NewService(f.repo, f.cats)).Routes)
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

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestHandler_Create(t *testing.T) {
	body := `{"name":"Groceries March","category_name":"Food","icon_id":3,
		"limit_amount":30000,"starting_date":"2026-03-01","limit_date":"2026-03-31"}`

	t.Run("Created", func(t *testing.T) {
		f := newFixture(t)
		cat := &category.Category{ID: uuid.New(), OwnerID: f.owner, Name: "Food", IconID: 3}

		f.cats.EXPECT().ResolveOrCreate(gomock.Any(), f.owner, "Food", 3).Return(cat, nil)
		f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
		f.tx.EXPECT().LockOwnerCategory(gomock.Any(), f.owner, cat.ID).Return(nil)
		f.tx.EXPECT().FindOverlappingBudgets(gomock.Any(), f.owner, cat.ID, day(2026, 3, 1), day(2026, 3, 31)).Return(nil, nil)
		f.tx.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
		f.tx.EXPECT().FindUnlinkedTransactions(gomock.Any(), f.owner, cat.ID, day(2026, 3, 1), day(2026, 3, 31)).Return(nil, nil)
		f.tx.EXPECT().Commit().Return(nil)
		f.tx.EXPECT().Rollback().Return(nil)

		rec := f.do(http.MethodPost, "/budgets/", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Budget struct {
				LimitAmount  int64  `json:"limit_amount"`
				Remaining    int64  `json:"remaining"`
				StartingDate string `json:"starting_date"`
			} `json:"budget"`
			LinkedTransactions int `json:"linked_transactions"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

		assert.Equal(t, int64(30000), resp.Budget.LimitAmount)
		assert.Equal(t, int64(30000), resp.Budget.Remaining)
		assert.Equal(t, "2026-03-01", resp.Budget.StartingDate)
		assert.Zero(t, resp.LinkedTransactions)
	})

	t.Run("Conflict", func(t *testing.T) {
		f := newFixture(t)
		cat := &category.Category{ID: uuid.New(), OwnerID: f.owner}
		existing := &budget.Budget{ID: uuid.New(), CategoryID: cat.ID, StartingDate: day(2026, 3, 15), LimitDate: day(2026, 4, 15)}

		f.cats.EXPECT().ResolveOrCreate(gomock.Any(), f.owner, "Food", 3).Return(cat, nil)
		f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
		f.tx.EXPECT().LockOwnerCategory(gomock.Any(), f.owner, cat.ID).Return(nil)
		f.tx.EXPECT().FindOverlappingBudgets(gomock.Any(), f.owner, cat.ID, gomock.Any(), gomock.Any()).
			Return([]*budget.Budget{existing}, nil)
		f.tx.EXPECT().Rollback().Return(nil)

		rec := f.do(http.MethodPost, "/budgets/", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/budgets/", `{"starting_date":"March"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Active(t *testing.T) {
	t.Run("NoBudget", func(t *testing.T) {
		f := newFixture(t)
		catID := uuid.New()

		f.repo.EXPECT().FindBudgetsContainingDate(gomock.Any(), f.owner, catID, day(2026, 3, 10)).Return(nil, nil)

		rec := f.do(http.MethodGet, "/budgets/active?category_id="+catID.String()+"&date=2026-03-10", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Found", func(t *testing.T) {
		f := newFixture(t)
		catID := uuid.New()
		b := &budget.Budget{ID: uuid.New(), OwnerID: f.owner, CategoryID: catID, LimitAmount: 5000, CurrentAmount: 6000,
			StartingDate: day(2026, 3, 1), LimitDate: day(2026, 3, 31)}

		f.repo.EXPECT().FindBudgetsContainingDate(gomock.Any(), f.owner, catID, day(2026, 3, 10)).Return([]*budget.Budget{b}, nil)

		rec := f.do(http.MethodGet, "/budgets/active?category_id="+catID.String()+"&date=2026-03-10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"remaining":-1000`)
	})

	t.Run("BadCategory", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/budgets/active?category_id=food", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Get_OtherOwner(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetBudget(gomock.Any(), id).Return(&budget.Budget{ID: id, OwnerID: uuid.New()}, nil)

	rec := f.do(http.MethodGet, "/budgets/"+id.String(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
