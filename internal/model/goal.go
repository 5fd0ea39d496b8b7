package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount to reach by a date. IsCompleted is set
// explicitly by the user; reaching the target does not flip it.
type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"`
	Description   string          `json:"description,omitempty"`
	IsCompleted   bool            `json:"is_completed"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Validate checks the goal before it is written.
func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: goal name is required", ErrInvalidInput)
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: target amount must be positive, got %s", ErrInvalidInput, g.TargetAmount)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: current amount cannot be negative, got %s", ErrInvalidInput, g.CurrentAmount)
	}
	if g.TargetDate.IsZero() {
		return fmt.Errorf("%w: target date is required", ErrInvalidInput)
	}
	return nil
}

// GoalProgress holds the values derived from a goal at a point in time.
type GoalProgress struct {
	Goal               SavingsGoal     `json:"goal"`
	ProgressPercentage float64         `json:"progress_percentage"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	DaysRemaining      int             `json:"days_remaining"`
	IsOnTrack          bool            `json:"is_on_track"`
}
