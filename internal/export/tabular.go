package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var csvHeader = []string{"date", "type", "category", "amount", "description", "id"}

func writeCSV(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, t := range r.Transactions {
		rec := []string{
			t.Date.Local().Format(dateLayout),
			string(t.Type),
			string(t.Category),
			t.Amount.StringFixed(2),
			t.Description,
			t.ID,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}

func writeJSON(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating JSON file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return f.Close()
}

// yamlReport is the YAML shape. Amounts are strings so the file stays
// exact and readable.
type yamlReport struct {
	Month    string `yaml:"month"`
	Currency string `yaml:"currency"`
	Summary  struct {
		Income      string `yaml:"income"`
		Expense     string `yaml:"expense"`
		Balance     string `yaml:"balance"`
		SavingsRate string `yaml:"savings_rate"`
	} `yaml:"summary"`
	Budgets         []yamlBudget `yaml:"budgets,omitempty"`
	Goals           []yamlGoal   `yaml:"goals,omitempty"`
	Recommendations []string     `yaml:"recommendations,omitempty"`
	Transactions    []TxRecord   `yaml:"transactions"`
}

type yamlBudget struct {
	Category string `yaml:"category"`
	Limit    string `yaml:"limit"`
	Spent    string `yaml:"spent"`
	Used     string `yaml:"used"`
}

type yamlGoal struct {
	Name    string `yaml:"name"`
	Target  string `yaml:"target"`
	Saved   string `yaml:"saved"`
	Due     string `yaml:"due"`
	OnTrack bool   `yaml:"on_track"`
}

func pct(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "%" }

func toYAML(r Report) yamlReport {
	var y yamlReport
	y.Month = r.Month.Format("2006-01")
	y.Currency = r.Currency
	y.Summary.Income = r.Dashboard.MonthlyIncome.StringFixed(2)
	y.Summary.Expense = r.Dashboard.MonthlyExpense.StringFixed(2)
	y.Summary.Balance = r.Dashboard.TotalBalance.StringFixed(2)
	y.Summary.SavingsRate = pct(r.Dashboard.SavingsRate)

	for _, b := range r.Budgets.Statuses {
		y.Budgets = append(y.Budgets, yamlBudget{
			Category: string(b.Budget.Category),
			Limit:    b.Budget.MonthlyLimit.StringFixed(2),
			Spent:    b.SpentAmount.StringFixed(2),
			Used:     pct(b.PercentageUsed),
		})
	}
	for _, g := range r.Goals.Active {
		y.Goals = append(y.Goals, yamlGoal{
			Name:    g.Goal.Name,
			Target:  g.Goal.TargetAmount.StringFixed(2),
			Saved:   g.Goal.CurrentAmount.StringFixed(2),
			Due:     g.Goal.TargetDate.Local().Format(dateLayout),
			OnTrack: g.IsOnTrack,
		})
	}
	for _, rec := range r.Dashboard.Recommendations {
		y.Recommendations = append(y.Recommendations, fmt.Sprintf("[%s] %s: %s", rec.Priority, rec.Title, rec.Description))
	}
	y.Transactions = make([]TxRecord, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		y.Transactions = append(y.Transactions, recordFrom(t))
	}
	return y
}

func writeYAML(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating YAML file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(r)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return f.Close()
}
