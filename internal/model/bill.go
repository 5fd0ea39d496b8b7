package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecurringInterval describes how often a bill repeats. It is metadata
// only; nothing generates the next occurrence.
type RecurringInterval string

const (
	Weekly    RecurringInterval = "WEEKLY"
	Monthly   RecurringInterval = "MONTHLY"
	Quarterly RecurringInterval = "QUARTERLY"
	Yearly    RecurringInterval = "YEARLY"
)

// ParseRecurringInterval accepts the interval name in any case. An empty
// string yields an empty interval.
func ParseRecurringInterval(s string) (RecurringInterval, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch RecurringInterval(s) {
	case "", Weekly, Monthly, Quarterly, Yearly:
		return RecurringInterval(s), nil
	}
	return "", fmt.Errorf("%w: unknown recurring interval %q", ErrInvalidInput, s)
}

// DefaultReminderDaysBefore is applied when a bill is created without one.
const DefaultReminderDaysBefore = 3

// BillReminder is a bill with a due date and a paid flag.
type BillReminder struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Amount             decimal.Decimal   `json:"amount"`
	DueDate            time.Time         `json:"due_date"`
	Category           Category          `json:"category"`
	Description        string            `json:"description,omitempty"`
	IsPaid             bool              `json:"is_paid"`
	IsRecurring        bool              `json:"is_recurring"`
	RecurringInterval  RecurringInterval `json:"recurring_interval,omitempty"`
	ReminderDaysBefore int               `json:"reminder_days_before"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// Validate checks the bill before it is written.
func (b BillReminder) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: bill title is required", ErrInvalidInput)
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative, got %s", ErrInvalidInput, b.Amount)
	}
	if b.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidInput)
	}
	if !b.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, b.Category)
	}
	if b.IsRecurring && b.RecurringInterval == "" {
		return fmt.Errorf("%w: recurring bill needs an interval", ErrInvalidInput)
	}
	if _, err := ParseRecurringInterval(string(b.RecurringInterval)); err != nil {
		return err
	}
	if b.ReminderDaysBefore < 0 {
		return fmt.Errorf("%w: reminder days cannot be negative", ErrInvalidInput)
	}
	return nil
}

// BillStatus is a bill annotated relative to a reference date.
type BillStatus struct {
	Bill         BillReminder `json:"bill"`
	IsOverdue    bool         `json:"is_overdue"`
	DaysUntilDue int          `json:"days_until_due"`
}

// ReminderDue reports whether an unpaid bill has entered its reminder window.
func (s BillStatus) ReminderDue() bool {
	return !s.Bill.IsPaid && s.DaysUntilDue >= 0 && s.DaysUntilDue <= s.Bill.ReminderDaysBefore
}
