package model

import (
	"fmt"
	"strings"
)

// Category is a closed set of transaction, budget, and bill labels.
type Category string

// Expense categories.
const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryShopping      Category = "SHOPPING"
	CategoryHealthcare    Category = "HEALTHCARE"
	CategoryEducation     Category = "EDUCATION"
	CategoryUtilities     Category = "UTILITIES"
	CategoryRent          Category = "RENT"
)

// Income categories.
const (
	CategorySalary     Category = "SALARY"
	CategoryBonus      Category = "BONUS"
	CategoryInvestment Category = "INVESTMENT"
	CategoryOther      Category = "OTHER"
)

// ExpenseCategories lists the categories valid for EXPENSE transactions and budgets.
var ExpenseCategories = []Category{
	CategoryFood, CategoryTransport, CategoryEntertainment, CategoryShopping,
	CategoryHealthcare, CategoryEducation, CategoryUtilities, CategoryRent,
}

// IncomeCategories lists the categories valid for INCOME transactions.
var IncomeCategories = []Category{
	CategorySalary, CategoryBonus, CategoryInvestment, CategoryOther,
}

// CategoriesFor returns the categories accepted for a transaction type.
func CategoriesFor(t TransactionType) []Category {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IsExpense reports whether c is an expense category.
func (c Category) IsExpense() bool {
	for _, e := range ExpenseCategories {
		if c == e {
			return true
		}
	}
	return false
}

// IsIncome reports whether c is an income category.
func (c Category) IsIncome() bool {
	for _, e := range IncomeCategories {
		if c == e {
			return true
		}
	}
	return false
}

// Valid reports whether c is any known category.
func (c Category) Valid() bool {
	return c.IsExpense() || c.IsIncome()
}

// DisplayName returns the title-cased label, e.g. "Healthcare".
func (c Category) DisplayName() string {
	s := string(c)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// ParseCategory accepts either the stored form ("FOOD") or the display
// name ("Food"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}
