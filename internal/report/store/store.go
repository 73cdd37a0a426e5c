package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/pocket/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// where builds the WHERE clause shared by the aggregations. Each optional
// bound only adds its own predicate.
func where(filter report.Filter) (string, []any) {
	conds := []string{"t.owner_id = $1"}
	args := []any{filter.OwnerID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.CategoryIDs) > 0 {
		add("t.category_id = ANY($%d)", filter.CategoryIDs)
	}

	if filter.From != nil {
		add("t.date >= $%d", *filter.From)
	}

	if filter.Until != nil {
		add("t.date <= $%d", *filter.Until)
	}

	if filter.Kind != nil {
		add("t.kind = $%d", string(*filter.Kind))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) SumByCategory(ctx context.Context, filter report.Filter) ([]report.CategoryTotal, error) {
	cond, args := where(filter)

	query := `
		SELECT c.id, c.name, c.icon_id, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id` + cond + `
		GROUP BY c.id, c.name, c.icon_id
		ORDER BY total DESC, c.name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing by category: %w", err)
	}
	defer rows.Close()

	var totals []report.CategoryTotal

	for rows.Next() {
		var ct report.CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.Name, &ct.IconID, &ct.Total); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		totals = append(totals, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}

	return totals, nil
}

func (s *Store) SumByYear(ctx context.Context, filter report.Filter) ([]report.YearTotal, error) {
	cond, args := where(filter)

	query := `
		SELECT EXTRACT(YEAR FROM t.date)::int AS year, SUM(t.amount) AS total
		FROM transactions t` + cond + `
		GROUP BY year
		ORDER BY year ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing by year: %w", err)
	}
	defer rows.Close()

	var totals []report.YearTotal

	for rows.Next() {
		var yt report.YearTotal
		if err := rows.Scan(&yt.Year, &yt.Total); err != nil {
			return nil, fmt.Errorf("scanning year total: %w", err)
		}

		totals = append(totals, yt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating year totals: %w", err)
	}

	return totals, nil
}
