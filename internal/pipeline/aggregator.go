// Package pipeline turns stored finance records into the figures the
// dashboard, budget, goal, and bill screens display.
package pipeline

import (
	"sort"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

// Predicate selects transactions for aggregation.
type Predicate func(model.Transaction) bool

// OfType matches transactions of the given type.
func OfType(t model.TransactionType) Predicate {
	return func(tx model.Transaction) bool { return tx.Type == t }
}

// InCategory matches transactions in the given category.
func InCategory(c model.Category) Predicate {
	return func(tx model.Transaction) bool { return tx.Category == c }
}

// All matches every transaction.
func All(model.Transaction) bool { return true }

// SumAmount sums the amounts of transactions inside w that satisfy pred.
// It returns zero when nothing matches.
func SumAmount(txns []model.Transaction, pred Predicate, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		if !w.Contains(tx.Date) || !pred(tx) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

// FilterByWindow returns transactions whose date falls inside w.
func FilterByWindow(txns []model.Transaction, w Window) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txns {
		if w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// Totals computes income and expense sums for w.
func Totals(txns []model.Transaction, w Window) model.MonthTotals {
	return model.MonthTotals{
		Income:  SumAmount(txns, OfType(model.Income), w),
		Expense: SumAmount(txns, OfType(model.Expense), w),
	}
}

// Balance is income minus expense.
func Balance(t model.MonthTotals) decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// SavingsRate returns (income-expense)/income as a percentage, or 0 when
// there is no income.
func SavingsRate(t model.MonthTotals) float64 {
	if !t.Income.IsPositive() {
		return 0
	}
	return Balance(t).Div(t.Income).Mul(hundred).InexactFloat64()
}

// CategoryBreakdown groups expenses inside w by category, sorted by amount
// descending. SharePercent is relative to the window's total expense.
func CategoryBreakdown(txns []model.Transaction, w Window) []model.CategorySpend {
	byCat := make(map[model.Category]*model.CategorySpend)
	total := decimal.Zero

	for _, tx := range txns {
		if tx.Type != model.Expense || !w.Contains(tx.Date) {
			continue
		}
		cs, ok := byCat[tx.Category]
		if !ok {
			cs = &model.CategorySpend{Category: tx.Category, Amount: decimal.Zero}
			byCat[tx.Category] = cs
		}
		cs.Amount = cs.Amount.Add(tx.Amount)
		cs.Transactions++
		total = total.Add(tx.Amount)
	}

	out := make([]model.CategorySpend, 0, len(byCat))
	for _, cs := range byCat {
		if total.IsPositive() {
			cs.SharePercent = cs.Amount.Div(total).Mul(hundred).InexactFloat64()
		}
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

var hundred = decimal.NewFromInt(100)
