package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Budget is a spending limit for one expense category in one calendar month.
// The store keeps at most one budget per (Category, Month, Year) by convention.
type Budget struct {
	ID           string          `json:"id"`
	Category     Category        `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
}

// Validate checks the budget before it is written.
func (b Budget) Validate() error {
	if !b.MonthlyLimit.IsPositive() {
		return fmt.Errorf("%w: monthly limit must be positive, got %s", ErrInvalidInput, b.MonthlyLimit)
	}
	if !b.Category.IsExpense() {
		return fmt.Errorf("%w: %q is not an expense category", ErrInvalidInput, b.Category)
	}
	if b.Month < 1 || b.Month > 12 {
		return fmt.Errorf("%w: month must be 1-12, got %d", ErrInvalidInput, b.Month)
	}
	if b.Year < 1 {
		return fmt.Errorf("%w: year must be positive, got %d", ErrInvalidInput, b.Year)
	}
	return nil
}

// BudgetStatus is a budget joined with what was spent against it.
// PercentageUsed may exceed 100 and RemainingAmount may go negative.
type BudgetStatus struct {
	Budget          Budget          `json:"budget"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PercentageUsed  float64         `json:"percentage_used"`
}

// OverBudget reports whether spending passed the limit.
func (s BudgetStatus) OverBudget() bool {
	return s.SpentAmount.GreaterThan(s.Budget.MonthlyLimit)
}
