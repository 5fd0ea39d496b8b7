package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"FOOD", CategoryFood, false},
		{"food", CategoryFood, false},
		{" Healthcare ", CategoryHealthcare, false},
		{"Salary", CategorySalary, false},
		{"groceries", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ParseCategory(%q) err = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseCategory(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestCategoryDisplayName(t *testing.T) {
	if got := CategoryEntertainment.DisplayName(); got != "Entertainment" {
		t.Fatalf("got %q, want Entertainment", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	base := Transaction{
		Amount:   decimal.NewFromInt(12),
		Type:     Expense,
		Category: CategoryFood,
		Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := map[string]func(*Transaction){
		"zero amount":       func(tx *Transaction) { tx.Amount = decimal.Zero },
		"negative amount":   func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-3) },
		"income category":   func(tx *Transaction) { tx.Category = CategorySalary },
		"unknown type":      func(tx *Transaction) { tx.Type = "TRANSFER" },
		"missing date":      func(tx *Transaction) { tx.Date = time.Time{} },
		"expense on income": func(tx *Transaction) { tx.Type = Income },
	}
	for name, mutate := range tests {
		tx := base
		mutate(&tx)
		if err := tx.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: got %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	b := Budget{Category: CategoryFood, MonthlyLimit: decimal.NewFromInt(100), Month: 2, Year: 2024}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	b.MonthlyLimit = decimal.Zero
	if err := b.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero limit: got %v, want ErrInvalidInput", err)
	}
	b.MonthlyLimit = decimal.NewFromInt(100)
	b.Month = 13
	if err := b.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("month 13: got %v, want ErrInvalidInput", err)
	}
}

func TestGoalValidate(t *testing.T) {
	g := SavingsGoal{Name: "Trip", TargetAmount: decimal.NewFromInt(500), TargetDate: time.Now()}
	if err := g.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}
	g.TargetAmount = decimal.NewFromInt(-1)
	if err := g.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative target: got %v, want ErrInvalidInput", err)
	}
}

func TestBillValidate(t *testing.T) {
	b := BillReminder{Title: "Rent", Amount: decimal.NewFromInt(900), DueDate: time.Now(), Category: CategoryRent}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid bill rejected: %v", err)
	}
	b.IsRecurring = true
	if err := b.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("recurring without interval: got %v, want ErrInvalidInput", err)
	}
	b.RecurringInterval = Monthly
	if err := b.Validate(); err != nil {
		t.Fatalf("monthly bill rejected: %v", err)
	}
}

func TestBillReminderDue(t *testing.T) {
	st := BillStatus{Bill: BillReminder{ReminderDaysBefore: 3}, DaysUntilDue: 3}
	if !st.ReminderDue() {
		t.Fatal("bill due in 3 days with a 3-day reminder should be due")
	}
	st.Bill.IsPaid = true
	if st.ReminderDue() {
		t.Fatal("paid bill should not remind")
	}
}
