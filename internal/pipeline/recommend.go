package pipeline

import (
	"fmt"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

var (
	highSpendingRatio = decimal.NewFromFloat(0.8)
	minSavingsRatio   = decimal.NewFromFloat(0.1)
	nearLimitRatio    = decimal.NewFromFloat(0.8)
)

// Recommend applies the advisory rules to one month's figures. Rules run in
// a fixed order (spending, savings, budgets, goals) and the output keeps
// that order; Priority is not used for sorting. An empty result means
// every threshold passed.
func Recommend(totals model.MonthTotals, budgets []model.BudgetStatus, goals []model.GoalProgress) []model.Recommendation {
	var out []model.Recommendation

	if totals.Expense.GreaterThan(totals.Income.Mul(highSpendingRatio)) {
		out = append(out, model.Recommendation{
			Title:       "High Spending",
			Description: "Monthly expenses exceed 80% of income. Consider reducing unnecessary expenses.",
			Priority:    model.PriorityHigh,
			Kind:        model.KindSpending,
		})
	}

	if totals.Income.IsPositive() {
		ratio := totals.Income.Sub(totals.Expense).Div(totals.Income)
		if ratio.LessThan(minSavingsRatio) {
			out = append(out, model.Recommendation{
				Title:       "Low Savings Rate",
				Description: "Consider increasing savings rate to at least 10%.",
				Priority:    model.PriorityMedium,
				Kind:        model.KindSavings,
			})
		}
	}

	for _, st := range budgets {
		limit := st.Budget.MonthlyLimit
		name := st.Budget.Category.DisplayName()
		switch {
		case st.SpentAmount.GreaterThan(limit):
			out = append(out, model.Recommendation{
				Title:       name + " Budget Exceeded",
				Description: fmt.Sprintf("Exceeded budget of %s. Consider controlling expenses in this category.", limit.StringFixed(2)),
				Priority:    model.PriorityHigh,
				Kind:        model.KindBudget,
			})
		case st.SpentAmount.GreaterThan(limit.Mul(nearLimitRatio)):
			out = append(out, model.Recommendation{
				Title:       name + " Budget Near Limit",
				Description: "Used 80% of budget. Please control expenses.",
				Priority:    model.PriorityMedium,
				Kind:        model.KindBudget,
			})
		}
	}

	for _, gp := range goals {
		if gp.Goal.IsCompleted || gp.IsOnTrack {
			continue
		}
		out = append(out, model.Recommendation{
			Title:       gp.Goal.Name + " Behind Schedule",
			Description: "Savings goal is behind schedule. Consider increasing savings or adjusting target.",
			Priority:    model.PriorityMedium,
			Kind:        model.KindGoal,
		})
	}

	return out
}
