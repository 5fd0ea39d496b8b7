package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

// EvaluateBudget joins a budget with the amount spent against it.
// Nothing is clamped: an overspent budget reports more than 100% used
// and a negative remainder.
func EvaluateBudget(b model.Budget, spent decimal.Decimal) model.BudgetStatus {
	st := model.BudgetStatus{
		Budget:          b,
		SpentAmount:     spent,
		RemainingAmount: b.MonthlyLimit.Sub(spent),
	}
	if b.MonthlyLimit.IsPositive() {
		st.PercentageUsed = spent.Div(b.MonthlyLimit).Mul(hundred).InexactFloat64()
	}
	return st
}

// EvaluateBudgets computes every budget's spend from the month's
// transactions. Budgets are evaluated against their own month window.
func EvaluateBudgets(budgets []model.Budget, txns []model.Transaction) []model.BudgetStatus {
	out := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		w := BudgetWindow(b)
		spent := SumAmount(txns, func(tx model.Transaction) bool {
			return tx.Type == model.Expense && tx.Category == b.Category
		}, w)
		out = append(out, EvaluateBudget(b, spent))
	}
	sortBudgetStatuses(out)
	return out
}

// BudgetWindow returns the month window a budget applies to, in local time.
func BudgetWindow(b model.Budget) Window {
	return MonthWindow(time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.Local))
}

// SummarizeBudgets totals a month's budget statuses.
func SummarizeBudgets(statuses []model.BudgetStatus) (limit, spent, remaining decimal.Decimal) {
	limit, spent = decimal.Zero, decimal.Zero
	for _, s := range statuses {
		limit = limit.Add(s.Budget.MonthlyLimit)
		spent = spent.Add(s.SpentAmount)
	}
	return limit, spent, limit.Sub(spent)
}

func sortBudgetStatuses(s []model.BudgetStatus) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Budget.Category < s[j].Budget.Category
	})
}
