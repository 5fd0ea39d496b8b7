package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthTotals holds the income and expense sums for one month window.
type MonthTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategorySpend is one row of the monthly expense breakdown.
type CategorySpend struct {
	Category     Category        `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Transactions int             `json:"transactions"`
	SharePercent float64         `json:"share_percent"`
}

// Dashboard is the overview screen for one month.
type Dashboard struct {
	Month              time.Time        `json:"month"`
	MonthlyIncome      decimal.Decimal  `json:"monthly_income"`
	MonthlyExpense     decimal.Decimal  `json:"monthly_expense"`
	TotalBalance       decimal.Decimal  `json:"total_balance"`
	SavingsRate        float64          `json:"savings_rate"`
	RecentTransactions []Transaction    `json:"recent_transactions"`
	BudgetStatuses     []BudgetStatus   `json:"budget_statuses"`
	UpcomingBills      []BillStatus     `json:"upcoming_bills"`
	CategoryBreakdown  []CategorySpend  `json:"category_breakdown"`
	Recommendations    []Recommendation `json:"recommendations"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// BudgetOverview is the budgets screen for one month.
type BudgetOverview struct {
	Month          time.Time       `json:"month"`
	Statuses       []BudgetStatus  `json:"statuses"`
	TotalBudget    decimal.Decimal `json:"total_budget"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
}

// GoalOverview is the goals screen. Totals cover active goals only.
type GoalOverview struct {
	Active      []GoalProgress  `json:"active"`
	Completed   []GoalProgress  `json:"completed"`
	TotalTarget decimal.Decimal `json:"total_target"`
	TotalSaved  decimal.Decimal `json:"total_saved"`
}

// BillOverview is the bills screen.
type BillOverview struct {
	Upcoming  []BillStatus `json:"upcoming"`
	Overdue   []BillStatus `json:"overdue"`
	Reminders []BillStatus `json:"reminders"`
}
