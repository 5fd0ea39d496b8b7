package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/finburn/internal/model"
)

func TestSumAmountEmptyIsZero(t *testing.T) {
	w := MonthWindow(mustDate(t, "2024-05-01"))
	if got := SumAmount(nil, All, w); !got.IsZero() {
		t.Fatalf("got %s, want 0", got)
	}

	txns := []model.Transaction{
		{Amount: mustDec(t, "5"), Type: model.Income, Category: model.CategorySalary, Date: mustDate(t, "2024-05-02")},
	}
	if got := SumAmount(txns, OfType(model.Expense), w); !got.IsZero() {
		t.Fatalf("got %s, want 0 for no matching type", got)
	}
}

func TestSumAmountIsExact(t *testing.T) {
	w := MonthWindow(mustDate(t, "2024-05-01"))
	var txns []model.Transaction
	for i := 0; i < 10; i++ {
		txns = append(txns, model.Transaction{
			Amount: mustDec(t, "0.1"), Type: model.Expense, Category: model.CategoryFood,
			Date: mustDate(t, "2024-05-03").Add(time.Duration(i) * time.Hour),
		})
	}
	got := SumAmount(txns, OfType(model.Expense), w)
	if !got.Equal(mustDec(t, "1")) {
		t.Fatalf("got %s, want exactly 1", got)
	}
}

func TestTotalsAndSavingsRate(t *testing.T) {
	w := MonthWindow(mustDate(t, "2024-05-01"))
	txns := []model.Transaction{
		{Amount: mustDec(t, "10000"), Type: model.Income, Category: model.CategorySalary, Date: mustDate(t, "2024-05-01")},
		{Amount: mustDec(t, "8500"), Type: model.Expense, Category: model.CategoryRent, Date: mustDate(t, "2024-05-20")},
		{Amount: mustDec(t, "700"), Type: model.Expense, Category: model.CategoryRent, Date: mustDate(t, "2024-06-01")},
	}
	tot := Totals(txns, w)
	if !tot.Income.Equal(mustDec(t, "10000")) || !tot.Expense.Equal(mustDec(t, "8500")) {
		t.Fatalf("got income=%s expense=%s, want 10000/8500", tot.Income, tot.Expense)
	}
	if got := Balance(tot); !got.Equal(mustDec(t, "1500")) {
		t.Fatalf("balance = %s, want 1500", got)
	}
	if got := SavingsRate(tot); got != 15 {
		t.Fatalf("savings rate = %v, want 15", got)
	}
	if got := SavingsRate(model.MonthTotals{Expense: mustDec(t, "5")}); got != 0 {
		t.Fatalf("savings rate without income = %v, want 0", got)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	w := MonthWindow(mustDate(t, "2024-05-01"))
	txns := []model.Transaction{
		{Amount: mustDec(t, "300"), Type: model.Expense, Category: model.CategoryFood, Date: mustDate(t, "2024-05-01")},
		{Amount: mustDec(t, "100"), Type: model.Expense, Category: model.CategoryFood, Date: mustDate(t, "2024-05-02")},
		{Amount: mustDec(t, "600"), Type: model.Expense, Category: model.CategoryRent, Date: mustDate(t, "2024-05-03")},
		{Amount: mustDec(t, "5000"), Type: model.Income, Category: model.CategorySalary, Date: mustDate(t, "2024-05-03")},
		{Amount: mustDec(t, "50"), Type: model.Expense, Category: model.CategoryShopping, Date: mustDate(t, "2024-04-30")},
	}

	got := CategoryBreakdown(txns, w)
	if len(got) != 2 {
		t.Fatalf("got %d categories, want 2", len(got))
	}
	if got[0].Category != model.CategoryRent || got[0].SharePercent != 60 {
		t.Fatalf("first row = %+v, want RENT at 60%%", got[0])
	}
	if got[1].Category != model.CategoryFood || got[1].Transactions != 2 || got[1].SharePercent != 40 {
		t.Fatalf("second row = %+v, want FOOD with 2 transactions at 40%%", got[1])
	}
}
