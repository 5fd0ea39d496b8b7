package pipeline

import (
	"testing"

	"github.com/theirongolddev/finburn/internal/model"
)

func kinds(recs []model.Recommendation) []model.RecommendationKind {
	out := make([]model.RecommendationKind, len(recs))
	for i, r := range recs {
		out[i] = r.Kind
	}
	return out
}

func TestRecommendHighSpendingOnly(t *testing.T) {
	recs := Recommend(model.MonthTotals{Income: mustDec(t, "10000"), Expense: mustDec(t, "8500")}, nil, nil)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1: %+v", len(recs), recs)
	}
	if recs[0].Kind != model.KindSpending || recs[0].Priority != model.PriorityHigh {
		t.Fatalf("got %+v, want HIGH SPENDING", recs[0])
	}
}

func TestRecommendLowSavings(t *testing.T) {
	// 7500/8000: under the 80% line but only 6.25% saved.
	recs := Recommend(model.MonthTotals{Income: mustDec(t, "8000"), Expense: mustDec(t, "7500")}, nil, nil)
	got := kinds(recs)
	if len(got) != 2 || got[0] != model.KindSpending || got[1] != model.KindSavings {
		t.Fatalf("got %v, want [SPENDING SAVINGS]", got)
	}

	recs = Recommend(model.MonthTotals{Income: mustDec(t, "10000"), Expense: mustDec(t, "9500")}, nil, nil)
	if recs[1].Priority != model.PriorityMedium {
		t.Fatalf("savings priority = %s, want MEDIUM", recs[1].Priority)
	}
}

func TestRecommendNoIncome(t *testing.T) {
	if recs := Recommend(model.MonthTotals{}, nil, nil); len(recs) != 0 {
		t.Fatalf("empty month produced %+v", recs)
	}
	recs := Recommend(model.MonthTotals{Expense: mustDec(t, "1")}, nil, nil)
	if got := kinds(recs); len(got) != 1 || got[0] != model.KindSpending {
		t.Fatalf("got %v, want only SPENDING", got)
	}
}

func TestRecommendBudgets(t *testing.T) {
	totals := model.MonthTotals{Income: mustDec(t, "10000"), Expense: mustDec(t, "2000")}
	budgets := []model.BudgetStatus{
		EvaluateBudget(model.Budget{Category: model.CategoryFood, MonthlyLimit: mustDec(t, "1000")}, mustDec(t, "850")),
		EvaluateBudget(model.Budget{Category: model.CategoryRent, MonthlyLimit: mustDec(t, "1000")}, mustDec(t, "1000.01")),
		EvaluateBudget(model.Budget{Category: model.CategoryShopping, MonthlyLimit: mustDec(t, "1000")}, mustDec(t, "800")),
	}

	recs := Recommend(totals, budgets, nil)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
	}
	if recs[0].Title != "Food Budget Near Limit" || recs[0].Priority != model.PriorityMedium {
		t.Fatalf("first = %+v, want Food near limit MEDIUM", recs[0])
	}
	if recs[1].Title != "Rent Budget Exceeded" || recs[1].Priority != model.PriorityHigh {
		t.Fatalf("second = %+v, want Rent exceeded HIGH", recs[1])
	}
	if recs[1].Description != "Exceeded budget of 1000.00. Consider controlling expenses in this category." {
		t.Fatalf("description = %q", recs[1].Description)
	}
}

func TestRecommendKeepsRuleOrder(t *testing.T) {
	created := mustDate(t, "2024-01-01")
	now := mustDate(t, "2024-07-01")
	behind := EvaluateGoal(model.SavingsGoal{
		Name: "House", TargetAmount: mustDec(t, "12000"), CurrentAmount: mustDec(t, "3000"),
		TargetDate: mustDate(t, "2024-12-31"), CreatedAt: created,
	}, now)
	done := behind
	done.Goal.IsCompleted = true
	done.Goal.Name = "Done"

	totals := model.MonthTotals{Income: mustDec(t, "1000"), Expense: mustDec(t, "990")}
	budgets := []model.BudgetStatus{
		EvaluateBudget(model.Budget{Category: model.CategoryFood, MonthlyLimit: mustDec(t, "100")}, mustDec(t, "150")),
	}

	recs := Recommend(totals, budgets, []model.GoalProgress{behind, done})
	got := kinds(recs)
	want := []model.RecommendationKind{model.KindSpending, model.KindSavings, model.KindBudget, model.KindGoal}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if recs[3].Title != "House Behind Schedule" {
		t.Fatalf("goal title = %q", recs[3].Title)
	}
}
