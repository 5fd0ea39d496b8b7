package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

func TestEvaluateBudget(t *testing.T) {
	tests := []struct {
		name          string
		limit         string
		spent         string
		wantRemaining string
		wantPct       float64
	}{
		{"near limit", "1000", "850", "150", 85},
		{"untouched", "1000", "0", "1000", 0},
		{"exactly at limit", "500", "500", "0", 100},
		{"over budget", "200", "300", "-100", 150},
		{"zero limit", "0", "40", "-40", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.Budget{Category: model.CategoryFood, MonthlyLimit: mustDec(t, tt.limit), Month: 3, Year: 2024}
			st := EvaluateBudget(b, mustDec(t, tt.spent))
			if !st.RemainingAmount.Equal(mustDec(t, tt.wantRemaining)) {
				t.Fatalf("remaining = %s, want %s", st.RemainingAmount, tt.wantRemaining)
			}
			if st.PercentageUsed != tt.wantPct {
				t.Fatalf("pct = %v, want %v", st.PercentageUsed, tt.wantPct)
			}
		})
	}
}

func TestBudgetPercentageMonotonic(t *testing.T) {
	b := model.Budget{Category: model.CategoryFood, MonthlyLimit: mustDec(t, "333.33"), Month: 1, Year: 2024}
	prev := -1.0
	for cents := int64(0); cents <= 100000; cents += 1337 {
		pct := EvaluateBudget(b, decimal.New(cents, -2)).PercentageUsed
		if pct < prev {
			t.Fatalf("pct dropped from %v to %v at spent=%d cents", prev, pct, cents)
		}
		prev = pct
	}
}

func TestEvaluateBudgetsUsesCategoryAndMonth(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.Local) }
	txns := []model.Transaction{
		{Amount: mustDec(t, "600"), Type: model.Expense, Category: model.CategoryFood, Date: day(2)},
		{Amount: mustDec(t, "250"), Type: model.Expense, Category: model.CategoryFood, Date: day(31)},
		{Amount: mustDec(t, "900"), Type: model.Expense, Category: model.CategoryRent, Date: day(3)},
		{Amount: mustDec(t, "75"), Type: model.Expense, Category: model.CategoryFood, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)},
	}
	budgets := []model.Budget{
		{Category: model.CategoryFood, MonthlyLimit: mustDec(t, "1000"), Month: 3, Year: 2024},
	}

	got := EvaluateBudgets(budgets, txns)
	if len(got) != 1 {
		t.Fatalf("got %d statuses, want 1", len(got))
	}
	if !got[0].SpentAmount.Equal(mustDec(t, "850")) {
		t.Fatalf("spent = %s, want 850", got[0].SpentAmount)
	}
	if got[0].PercentageUsed != 85 {
		t.Fatalf("pct = %v, want 85", got[0].PercentageUsed)
	}
}

func TestSummarizeBudgets(t *testing.T) {
	statuses := []model.BudgetStatus{
		EvaluateBudget(model.Budget{MonthlyLimit: mustDec(t, "1000")}, mustDec(t, "850")),
		EvaluateBudget(model.Budget{MonthlyLimit: mustDec(t, "200")}, mustDec(t, "300")),
	}
	limit, spent, remaining := SummarizeBudgets(statuses)
	if !limit.Equal(mustDec(t, "1200")) || !spent.Equal(mustDec(t, "1150")) || !remaining.Equal(mustDec(t, "50")) {
		t.Fatalf("got %s/%s/%s, want 1200/1150/50", limit, spent, remaining)
	}
}
