package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finburn/internal/config"
	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

type formKind int

const (
	formNone formKind = iota
	formTransaction
	formSetup
)

// txValues backs the new-transaction form.
type txValues struct {
	Type        string
	Category    string
	Amount      string
	Date        string
	Description string
}

// setupValues backs the first-run form.
type setupValues struct {
	Currency string
	Theme    string
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("not a number")
	}
	if !d.IsPositive() {
		return errors.New("must be positive")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.ExpenseCategories)+len(model.IncomeCategories))
	for _, c := range model.ExpenseCategories {
		opts = append(opts, huh.NewOption("Expense · "+c.DisplayName(), string(c)))
	}
	for _, c := range model.IncomeCategories {
		opts = append(opts, huh.NewOption("Income · "+c.DisplayName(), string(c)))
	}
	return opts
}

func newTransactionForm(v *txValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&v.Type),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&v.Category),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Validate(validateAmount).
				Value(&v.Amount),
			huh.NewInput().
				Title("Date").
				Validate(validateDate).
				Value(&v.Date),
			huh.NewInput().
				Title("Description").
				CharLimit(120).
				Value(&v.Description),
		).Title("New transaction"),
	).WithShowHelp(true)
}

// toTransaction converts form input. Category/type mismatches are
// reported by Validate.
func (v txValues) toTransaction() (model.Transaction, error) {
	typ, err := model.ParseTransactionType(v.Type)
	if err != nil {
		return model.Transaction{}, err
	}
	cat, err := model.ParseCategory(v.Category)
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(v.Amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: amount %q", model.ErrInvalidInput, v.Amount)
	}
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(v.Date), time.Local)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: date %q", model.ErrInvalidInput, v.Date)
	}
	tx := model.Transaction{
		Amount:      amount,
		Type:        typ,
		Category:    cat,
		Description: strings.TrimSpace(v.Description),
		Date:        date,
	}
	return tx, tx.Validate()
}

func newSetupForm(v *setupValues) *huh.Form {
	themes := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themes[i] = huh.NewOption(t.Name, t.Name)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finburn").
				Description("Track income, expenses, budgets, goals, and bills.\nThese settings are saved to "+config.ConfigPath()),
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	).WithShowHelp(true)
}

func (a *App) openTransactionForm() tea.Cmd {
	a.txVals = &txValues{
		Type:     string(model.Expense),
		Category: string(model.CategoryFood),
		Date:     time.Now().Format("2006-01-02"),
	}
	a.form = newTransactionForm(a.txVals)
	a.formKind = formTransaction
	return a.initForm()
}

func (a *App) openSetupForm() tea.Cmd {
	a.setupVals = &setupValues{Currency: a.currency, Theme: theme.Active.Name}
	a.form = newSetupForm(a.setupVals)
	a.formKind = formSetup
	return a.initForm()
}

func (a *App) initForm() tea.Cmd {
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form, a.formKind = nil, formNone
		switch kind {
		case formTransaction:
			tx, err := a.txVals.toTransaction()
			if err != nil {
				a.note = "save failed: " + err.Error()
				return a, nil
			}
			if a.rec == nil {
				return a, nil
			}
			return a, saveTransactionCmd(a.rec, tx)
		case formSetup:
			a.needSetup = false
			if err := a.saveSetup(); err != nil {
				a.note = "save failed: " + err.Error()
			}
		}
		return a, nil

	case huh.StateAborted:
		if a.formKind == formSetup {
			a.needSetup = false
		}
		a.form, a.formKind = nil, formNone
		return a, nil
	}
	return a, cmd
}

func (a *App) saveSetup() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if c := strings.TrimSpace(a.setupVals.Currency); c != "" {
		cfg.General.Currency = c
		a.currency = c
	}
	cfg.Appearance.Theme = a.setupVals.Theme
	theme.SetActive(a.setupVals.Theme)
	return config.Save(cfg)
}
