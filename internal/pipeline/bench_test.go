package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

func benchTransactions(n int) []model.Transaction {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := make([]model.Transaction, n)
	for i := range txns {
		typ, cat := model.Expense, model.ExpenseCategories[i%len(model.ExpenseCategories)]
		if i%10 == 0 {
			typ, cat = model.Income, model.CategorySalary
		}
		txns[i] = model.Transaction{
			Amount:   decimal.New(int64(100+i%9000), -2),
			Type:     typ,
			Category: cat,
			Date:     start.Add(time.Duration(i) * 17 * time.Minute),
		}
	}
	return txns
}

func BenchmarkSumAmount(b *testing.B) {
	txns := benchTransactions(50000)
	w := MonthWindow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SumAmount(txns, OfType(model.Expense), w)
	}
}

func BenchmarkCategoryBreakdown(b *testing.B) {
	txns := benchTransactions(50000)
	w := MonthWindow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CategoryBreakdown(txns, w)
	}
}
