// Package model defines the records tracked by finburn and the
// snapshot structs derived from them.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// ParseTransactionType accepts "income"/"expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, s)
}

// Transaction is a single income or expense entry. Amount is always
// positive; Type carries the sign.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Validate checks the transaction before it is written.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, t.Amount)
	}
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, t.Type)
	}
	if t.Type == Income && !t.Category.IsIncome() {
		return fmt.Errorf("%w: %q is not an income category", ErrInvalidInput, t.Category)
	}
	if t.Type == Expense && !t.Category.IsExpense() {
		return fmt.Errorf("%w: %q is not an expense category", ErrInvalidInput, t.Category)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// Signed returns the amount with expenses negated, for balance math.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
