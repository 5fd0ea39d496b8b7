package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleReport() Report {
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	txs := []model.Transaction{
		{ID: "t1", Amount: dec("3000"), Type: model.Income, Category: model.CategorySalary, Description: "March pay", Date: month.AddDate(0, 0, 1)},
		{ID: "t2", Amount: dec("120.5"), Type: model.Expense, Category: model.CategoryFood, Description: "groceries, weekly", Date: month.AddDate(0, 0, 3)},
		{ID: "t3", Amount: dec("900"), Type: model.Expense, Category: model.CategoryRent, Date: month.AddDate(0, 0, 4)},
	}
	return Report{
		Month:    month,
		Currency: "$",
		Dashboard: model.Dashboard{
			Month:          month,
			MonthlyIncome:  dec("3000"),
			MonthlyExpense: dec("1020.5"),
			TotalBalance:   dec("1979.5"),
			SavingsRate:    65.98,
			CategoryBreakdown: []model.CategorySpend{
				{Category: model.CategoryRent, Amount: dec("900"), Transactions: 1, SharePercent: 88.2},
				{Category: model.CategoryFood, Amount: dec("120.5"), Transactions: 1, SharePercent: 11.8},
			},
			Recommendations: []model.Recommendation{
				{Title: "Food Budget Near Limit", Description: "Used 90.0% of budget.", Priority: model.PriorityMedium, Kind: model.KindBudget},
			},
		},
		Budgets: model.BudgetOverview{
			Month: month,
			Statuses: []model.BudgetStatus{
				{Budget: model.Budget{Category: model.CategoryFood, MonthlyLimit: dec("150")}, SpentAmount: dec("120.5"), PercentageUsed: 80.3},
			},
		},
		Goals: model.GoalOverview{
			Active: []model.GoalProgress{
				{Goal: model.SavingsGoal{Name: "Trip", TargetAmount: dec("2000"), CurrentAmount: dec("500"), TargetDate: month.AddDate(0, 6, 0)}, IsOnTrack: true},
			},
		},
		Transactions: txs,
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"csv", "JSON", " yaml ", "Pdf", "png"} {
		if _, err := ParseFormat(in); err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
	}
	if _, err := ParseFormat("xlsx"); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("ParseFormat(xlsx) err = %v, want ErrInvalidInput", err)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := New(dir, nil).Write(sampleReport(), FormatCSV, "")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "finburn-2024-03.csv" {
		t.Fatalf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if got := rows[2]; got[0] != "2024-03-04" || got[3] != "120.50" || got[4] != "groceries, weekly" {
		t.Fatalf("row 2 = %v", got)
	}
}

func TestWriteJSON(t *testing.T) {
	path, err := New(t.TempDir(), nil).Write(sampleReport(), FormatJSON, "report.txt")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Base(path) != "report.json" {
		t.Fatalf("path = %s, want report.json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Dashboard.TotalBalance.Equal(dec("1979.5")) || len(got.Transactions) != 3 {
		t.Fatalf("balance=%s txs=%d", got.Dashboard.TotalBalance, len(got.Transactions))
	}
}

func TestYAMLExportImportsBack(t *testing.T) {
	r := sampleReport()
	r.Transactions[1].Amount = dec("120.505")
	path, err := New(t.TempDir(), nil).Write(r, FormatYAML, "")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	txs, err := ReadTransactionsFile(path)
	if err != nil {
		t.Fatalf("ReadTransactionsFile: %v", err)
	}
	if len(txs) != len(r.Transactions) {
		t.Fatalf("got %d transactions, want %d", len(txs), len(r.Transactions))
	}
	for i, tx := range txs {
		want := r.Transactions[i]
		if !tx.Amount.Equal(want.Amount) || tx.Type != want.Type || tx.Category != want.Category {
			t.Fatalf("tx %d = %+v, want %+v", i, tx, want)
		}
		if !tx.Date.Equal(want.Date) {
			t.Fatalf("tx %d date = %v, want %v", i, tx.Date, want.Date)
		}
	}
}

func TestReadTransactionsList(t *testing.T) {
	in := `
- date: 2024-05-02
  type: expense
  category: transport
  amount: "42.10"
  description: train
- date: 2024-05-03
  type: income
  category: bonus
  amount: 250
`
	txs, err := ReadTransactions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d, want 2", len(txs))
	}
	if txs[0].Category != model.CategoryTransport || !txs[0].Amount.Equal(dec("42.10")) {
		t.Fatalf("tx 0 = %+v", txs[0])
	}
	if txs[1].Type != model.Income || !txs[1].Amount.Equal(dec("250")) {
		t.Fatalf("tx 1 = %+v", txs[1])
	}
}

func TestReadTransactionsRejectsBadRecord(t *testing.T) {
	tests := map[string]string{
		"negative amount":   "- {date: 2024-05-02, type: expense, category: food, amount: -3}",
		"category mismatch": "- {date: 2024-05-02, type: income, category: food, amount: 3}",
		"bad date":          "- {date: 05/02/2024, type: expense, category: food, amount: 3}",
		"unknown type":      "- {date: 2024-05-02, type: refund, category: food, amount: 3}",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTransactions(strings.NewReader(in))
			if !errors.Is(err, model.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestWritePDF(t *testing.T) {
	path, err := New(t.TempDir(), nil).Write(sampleReport(), FormatPDF, "")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", data[:min(8, len(data))])
	}
}

func TestWritePNG(t *testing.T) {
	path, err := New(t.TempDir(), nil).Write(sampleReport(), FormatPNG, "")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("output does not look like a PNG")
	}

	empty := sampleReport()
	empty.Dashboard.CategoryBreakdown = nil
	if _, err := New(t.TempDir(), nil).Write(empty, FormatPNG, ""); !errors.Is(err, ErrNoChartData) {
		t.Fatalf("err = %v, want ErrNoChartData", err)
	}
}
