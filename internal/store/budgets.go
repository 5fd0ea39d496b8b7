package store

import (
	"context"

	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"
)

const budgetColumns = `id, category, monthly_limit, month, year`

// InsertBudget validates and stores b. Rows with the same ID are replaced;
// uniqueness per (category, month, year) is left to the caller, which
// should look up BudgetByCategory first.
func (s *Store) InsertBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	if err := b.Validate(); err != nil {
		return model.Budget{}, err
	}
	if b.ID == "" {
		b.ID = newID()
	}

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO budgets (`+budgetColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		b.ID, string(b.Category), b.MonthlyLimit.String(), b.Month, b.Year,
	)
	if err != nil {
		return model.Budget{}, unavailable("inserting budget", err)
	}

	s.log.Debug("stored", log.FieldKind, KindBudget, log.FieldID, b.ID)
	s.publish(KindBudget, OpInsert, b.ID)
	return b, nil
}

// UpdateBudget rewrites an existing budget.
func (s *Store) UpdateBudget(ctx context.Context, b model.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE budgets
		SET category = ?, monthly_limit = ?, month = ?, year = ?
		WHERE id = ?`,
		string(b.Category), b.MonthlyLimit.String(), b.Month, b.Year, b.ID,
	)
	if err != nil {
		return unavailable("updating budget", err)
	}
	if err := mustAffect(res, "budget", b.ID); err != nil {
		return err
	}
	s.publish(KindBudget, OpUpdate, b.ID)
	return nil
}

// DeleteBudget removes a budget.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return unavailable("deleting budget", err)
	}
	if err := mustAffect(res, "budget", id); err != nil {
		return err
	}
	s.publish(KindBudget, OpDelete, id)
	return nil
}

// Budget looks up one budget by ID.
func (s *Store) Budget(ctx context.Context, id string) (model.Budget, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+budgetColumns+" FROM budgets WHERE id = ?", id)
	return oneBudget(row)
}

// BudgetByCategory looks up the budget for a category in one month.
func (s *Store) BudgetByCategory(ctx context.Context, c model.Category, month, year int) (model.Budget, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+budgetColumns+` FROM budgets
		WHERE category = ? AND month = ? AND year = ? LIMIT 1`, string(c), month, year)
	return oneBudget(row)
}

// AllBudgets returns every budget, latest period first.
func (s *Store) AllBudgets(ctx context.Context) ([]model.Budget, error) {
	return s.queryBudgets(ctx, "SELECT "+budgetColumns+" FROM budgets ORDER BY year DESC, month DESC, category")
}

// BudgetsForMonth returns one month's budgets ordered by category.
func (s *Store) BudgetsForMonth(ctx context.Context, month, year int) ([]model.Budget, error) {
	return s.queryBudgets(ctx, "SELECT "+budgetColumns+` FROM budgets
		WHERE month = ? AND year = ? ORDER BY category`, month, year)
}

// BudgetsByCategory returns a category's budgets across all months.
func (s *Store) BudgetsByCategory(ctx context.Context, c model.Category) ([]model.Budget, error) {
	return s.queryBudgets(ctx, "SELECT "+budgetColumns+` FROM budgets
		WHERE category = ? ORDER BY year DESC, month DESC`, string(c))
}

func (s *Store) queryBudgets(ctx context.Context, query string, args ...any) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("querying budgets", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("reading budgets", err)
	}
	return out, nil
}

func oneBudget(row scanner) (model.Budget, bool, error) {
	b, err := scanBudget(row)
	if noRows(err) {
		return model.Budget{}, false, nil
	}
	if err != nil {
		return model.Budget{}, false, err
	}
	return b, true, nil
}

func scanBudget(sc scanner) (model.Budget, error) {
	var b model.Budget
	var cat, limit string
	if err := sc.Scan(&b.ID, &cat, &limit, &b.Month, &b.Year); err != nil {
		if noRows(err) {
			return b, err
		}
		return b, unavailable("scanning budget", err)
	}
	amt, err := parseAmount(limit)
	if err != nil {
		return b, err
	}
	b.MonthlyLimit = amt
	b.Category = model.Category(cat)
	return b, nil
}
