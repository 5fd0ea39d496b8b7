package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultRecentLimit is how many recent transactions the dashboard shows.
const DefaultRecentLimit = 5

// Store is the read side of the record store the loader depends on. Each
// call returns a snapshot of the current records.
type Store interface {
	TransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
	SumTransactionsByType(ctx context.Context, t model.TransactionType, start, end time.Time) (decimal.NullDecimal, error)
	SumTransactionsByCategory(ctx context.Context, c model.Category, start, end time.Time) (decimal.NullDecimal, error)
	BudgetsForMonth(ctx context.Context, month, year int) ([]model.Budget, error)
	AllGoals(ctx context.Context) ([]model.SavingsGoal, error)
	ActiveGoals(ctx context.Context) ([]model.SavingsGoal, error)
	AllBills(ctx context.Context) ([]model.BillReminder, error)
	BillsByDateRange(ctx context.Context, start, end time.Time) ([]model.BillReminder, error)
}

// Loader builds screen snapshots by querying the store concurrently and
// folding the results through the evaluators. A failed query fails the
// whole snapshot; partial snapshots are never returned.
type Loader struct {
	Store           Store
	Now             func() time.Time
	RecentLimit     int
	BillHorizonDays int
}

// NewLoader returns a Loader with default limits and the wall clock.
func NewLoader(s Store) *Loader {
	return &Loader{
		Store:           s,
		Now:             time.Now,
		RecentLimit:     DefaultRecentLimit,
		BillHorizonDays: DefaultBillHorizonDays,
	}
}

// Dashboard builds the overview for the month containing month. Upcoming
// bills and goal pacing are evaluated against the loader's clock.
func (l *Loader) Dashboard(ctx context.Context, month time.Time) (model.Dashboard, error) {
	now := l.Now()
	w := MonthWindow(month)

	var (
		income, expense decimal.NullDecimal
		monthTxns       []model.Transaction
		recent          []model.Transaction
		budgets         []model.Budget
		goals           []model.SavingsGoal
		bills           []model.BillReminder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = l.Store.SumTransactionsByType(gctx, model.Income, w.Start, w.End)
		return wrap("income total", err)
	})
	g.Go(func() (err error) {
		expense, err = l.Store.SumTransactionsByType(gctx, model.Expense, w.Start, w.End)
		return wrap("expense total", err)
	})
	g.Go(func() (err error) {
		monthTxns, err = l.Store.TransactionsByDateRange(gctx, w.Start, w.End)
		return wrap("month transactions", err)
	})
	g.Go(func() (err error) {
		recent, err = l.Store.RecentTransactions(gctx, l.recentLimit())
		return wrap("recent transactions", err)
	})
	g.Go(func() (err error) {
		budgets, err = l.Store.BudgetsForMonth(gctx, int(w.Start.Month()), w.Start.Year())
		return wrap("budgets", err)
	})
	g.Go(func() (err error) {
		goals, err = l.Store.ActiveGoals(gctx)
		return wrap("active goals", err)
	})
	g.Go(func() (err error) {
		bills, err = l.Store.BillsByDateRange(gctx, now, now.AddDate(0, 0, l.horizon()))
		return wrap("upcoming bills", err)
	})
	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}

	totals := model.MonthTotals{Income: orZero(income), Expense: orZero(expense)}
	statuses := EvaluateBudgets(budgets, monthTxns)
	progress := evaluateGoals(goals, now)

	return model.Dashboard{
		Month:              w.Start,
		MonthlyIncome:      totals.Income,
		MonthlyExpense:     totals.Expense,
		TotalBalance:       Balance(totals),
		SavingsRate:        SavingsRate(totals),
		RecentTransactions: recent,
		BudgetStatuses:     statuses,
		UpcomingBills:      UpcomingBills(bills, now, l.horizon()),
		CategoryBreakdown:  CategoryBreakdown(monthTxns, w),
		Recommendations:    Recommend(totals, statuses, progress),
		GeneratedAt:        now,
	}, nil
}

// Budgets builds the budget screen for the month containing month. Each
// budget's spend is summed by the store in parallel.
func (l *Loader) Budgets(ctx context.Context, month time.Time) (model.BudgetOverview, error) {
	w := MonthWindow(month)
	budgets, err := l.Store.BudgetsForMonth(ctx, int(w.Start.Month()), w.Start.Year())
	if err != nil {
		return model.BudgetOverview{}, wrap("budgets", err)
	}

	spent := make([]decimal.Decimal, len(budgets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, b := range budgets {
		i, b := i, b
		g.Go(func() error {
			sum, err := l.Store.SumTransactionsByCategory(gctx, b.Category, w.Start, w.End)
			if err != nil {
				return wrap("spend for "+string(b.Category), err)
			}
			spent[i] = orZero(sum)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.BudgetOverview{}, err
	}

	statuses := make([]model.BudgetStatus, len(budgets))
	for i, b := range budgets {
		statuses[i] = EvaluateBudget(b, spent[i])
	}
	sortBudgetStatuses(statuses)

	total, used, left := SummarizeBudgets(statuses)
	return model.BudgetOverview{
		Month:          w.Start,
		Statuses:       statuses,
		TotalBudget:    total,
		TotalSpent:     used,
		TotalRemaining: left,
	}, nil
}

// Goals builds the goals screen.
func (l *Loader) Goals(ctx context.Context) (model.GoalOverview, error) {
	goals, err := l.Store.AllGoals(ctx)
	if err != nil {
		return model.GoalOverview{}, wrap("goals", err)
	}
	return SummarizeGoals(goals, l.Now()), nil
}

// Bills builds the bills screen.
func (l *Loader) Bills(ctx context.Context) (model.BillOverview, error) {
	bills, err := l.Store.AllBills(ctx)
	if err != nil {
		return model.BillOverview{}, wrap("bills", err)
	}
	now := l.Now()
	return model.BillOverview{
		Upcoming:  UpcomingBills(bills, now, l.horizon()),
		Overdue:   OverdueBills(bills, now),
		Reminders: DueReminders(bills, now),
	}, nil
}

// Recommendations evaluates the advisory rules for the month containing month.
func (l *Loader) Recommendations(ctx context.Context, month time.Time) ([]model.Recommendation, error) {
	now := l.Now()
	w := MonthWindow(month)

	var (
		txns    []model.Transaction
		budgets []model.Budget
		goals   []model.SavingsGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txns, err = l.Store.TransactionsByDateRange(gctx, w.Start, w.End)
		return wrap("month transactions", err)
	})
	g.Go(func() (err error) {
		budgets, err = l.Store.BudgetsForMonth(gctx, int(w.Start.Month()), w.Start.Year())
		return wrap("budgets", err)
	})
	g.Go(func() (err error) {
		goals, err = l.Store.ActiveGoals(gctx)
		return wrap("active goals", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Recommend(Totals(txns, w), EvaluateBudgets(budgets, txns), evaluateGoals(goals, now)), nil
}

func evaluateGoals(goals []model.SavingsGoal, now time.Time) []model.GoalProgress {
	out := make([]model.GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, EvaluateGoal(g, now))
	}
	return out
}

func (l *Loader) recentLimit() int {
	if l.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return l.RecentLimit
}

func (l *Loader) horizon() int {
	if l.BillHorizonDays <= 0 {
		return DefaultBillHorizonDays
	}
	return l.BillHorizonDays
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("loading %s: %w", what, err)
}
