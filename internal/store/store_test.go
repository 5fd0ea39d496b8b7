package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/pipeline"

	"github.com/shopspring/decimal"
)

var _ pipeline.Store = (*Store)(nil)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "finburn.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", v, err)
	}
	return d
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finburn.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path, nil)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		_ = s.Close()
	}
}

func TestTransactionCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	tx, err := s.InsertTransaction(ctx, model.Transaction{
		Amount: dec(t, "12.34"), Type: model.Expense, Category: model.CategoryFood,
		Description: "lunch", Date: at(2024, 3, 5),
	})
	if err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	if tx.ID == "" || tx.CreatedAt.IsZero() {
		t.Fatalf("insert did not assign id/created_at: %+v", tx)
	}

	got, ok, err := s.Transaction(ctx, tx.ID)
	if err != nil || !ok {
		t.Fatalf("Transaction: ok=%v err=%v", ok, err)
	}
	if !got.Amount.Equal(tx.Amount) || got.Description != "lunch" || !got.Date.Equal(tx.Date) {
		t.Fatalf("got %+v, want %+v", got, tx)
	}

	tx.Amount = dec(t, "15")
	if err := s.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	got, _, _ = s.Transaction(ctx, tx.ID)
	if !got.Amount.Equal(dec(t, "15")) {
		t.Fatalf("amount after update = %s, want 15", got.Amount)
	}

	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, ok, err := s.Transaction(ctx, tx.ID); ok || err != nil {
		t.Fatalf("after delete: ok=%v err=%v, want absent", ok, err)
	}
	if err := s.DeleteTransaction(ctx, tx.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestInsertRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	_, err := s.InsertTransaction(ctx, model.Transaction{Amount: dec(t, "-1"), Type: model.Expense, Category: model.CategoryFood, Date: at(2024, 1, 1)})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("negative amount: got %v, want ErrInvalidInput", err)
	}
	_, err = s.InsertBudget(ctx, model.Budget{Category: model.CategoryFood, MonthlyLimit: decimal.Zero, Month: 1, Year: 2024})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("zero limit: got %v, want ErrInvalidInput", err)
	}
	_, err = s.InsertGoal(ctx, model.SavingsGoal{Name: "x", TargetAmount: decimal.Zero, TargetDate: at(2025, 1, 1)})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("zero target: got %v, want ErrInvalidInput", err)
	}
}

func TestTransactionQueriesAndSums(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	rows := []model.Transaction{
		{Amount: dec(t, "0.1"), Type: model.Expense, Category: model.CategoryFood, Date: at(2024, 3, 1)},
		{Amount: dec(t, "0.2"), Type: model.Expense, Category: model.CategoryFood, Date: at(2024, 3, 31)},
		{Amount: dec(t, "500"), Type: model.Expense, Category: model.CategoryRent, Date: at(2024, 3, 2)},
		{Amount: dec(t, "3000"), Type: model.Income, Category: model.CategorySalary, Date: at(2024, 3, 3)},
		{Amount: dec(t, "99"), Type: model.Expense, Category: model.CategoryFood, Date: at(2024, 4, 1)},
	}
	for _, r := range rows {
		if _, err := s.InsertTransaction(ctx, r); err != nil {
			t.Fatalf("InsertTransaction: %v", err)
		}
	}

	w := pipeline.MonthWindow(at(2024, 3, 15))
	inMarch, err := s.TransactionsByDateRange(ctx, w.Start, w.End)
	if err != nil {
		t.Fatalf("TransactionsByDateRange: %v", err)
	}
	if len(inMarch) != 4 {
		t.Fatalf("got %d March transactions, want 4", len(inMarch))
	}
	if !inMarch[0].Date.After(inMarch[len(inMarch)-1].Date) {
		t.Fatal("range results should be newest first")
	}

	food, err := s.SumTransactionsByCategory(ctx, model.CategoryFood, w.Start, w.End)
	if err != nil || !food.Valid || !food.Decimal.Equal(dec(t, "0.3")) {
		t.Fatalf("food sum = %+v, %v, want exactly 0.3", food, err)
	}
	exp, err := s.SumTransactionsByType(ctx, model.Expense, w.Start, w.End)
	if err != nil || !exp.Decimal.Equal(dec(t, "500.3")) {
		t.Fatalf("expense sum = %+v, %v, want 500.3", exp, err)
	}

	empty := pipeline.MonthWindow(at(2020, 1, 1))
	none, err := s.SumTransactionsByType(ctx, model.Income, empty.Start, empty.End)
	if err != nil || none.Valid {
		t.Fatalf("empty sum = %+v, %v, want invalid", none, err)
	}

	byType, _ := s.TransactionsByType(ctx, model.Income)
	byCat, _ := s.TransactionsByCategory(ctx, model.CategoryFood)
	recent, _ := s.RecentTransactions(ctx, 2)
	all, _ := s.AllTransactions(ctx)
	if len(byType) != 1 || len(byCat) != 3 || len(recent) != 2 || len(all) != 5 {
		t.Fatalf("got type=%d cat=%d recent=%d all=%d, want 1/3/2/5", len(byType), len(byCat), len(recent), len(all))
	}
	if !recent[0].Date.Equal(at(2024, 4, 1)) {
		t.Fatalf("most recent = %s, want 2024-04-01", recent[0].Date)
	}
}

func TestBudgetUpsertByCategory(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	b, err := s.InsertBudget(ctx, model.Budget{Category: model.CategoryFood, MonthlyLimit: dec(t, "400"), Month: 3, Year: 2024})
	if err != nil {
		t.Fatalf("InsertBudget: %v", err)
	}
	if _, err := s.InsertBudget(ctx, model.Budget{Category: model.CategoryRent, MonthlyLimit: dec(t, "1200"), Month: 3, Year: 2024}); err != nil {
		t.Fatalf("InsertBudget: %v", err)
	}

	found, ok, err := s.BudgetByCategory(ctx, model.CategoryFood, 3, 2024)
	if err != nil || !ok || found.ID != b.ID {
		t.Fatalf("BudgetByCategory = %+v, %v, %v", found, ok, err)
	}
	found.MonthlyLimit = dec(t, "450")
	if _, err := s.InsertBudget(ctx, found); err != nil {
		t.Fatalf("replace budget: %v", err)
	}

	month, err := s.BudgetsForMonth(ctx, 3, 2024)
	if err != nil {
		t.Fatalf("BudgetsForMonth: %v", err)
	}
	if len(month) != 2 || month[0].Category != model.CategoryFood || !month[0].MonthlyLimit.Equal(dec(t, "450")) {
		t.Fatalf("month budgets = %+v", month)
	}
	if _, ok, _ := s.BudgetByCategory(ctx, model.CategoryFood, 4, 2024); ok {
		t.Fatal("April budget should be absent")
	}
	if err := s.UpdateBudget(ctx, model.Budget{ID: "missing", Category: model.CategoryFood, MonthlyLimit: dec(t, "1"), Month: 1, Year: 2024}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestGoalAmountAndCompletion(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	clock := at(2024, 1, 1)
	s.now = func() time.Time { return clock }

	g, err := s.InsertGoal(ctx, model.SavingsGoal{Name: "Trip", TargetAmount: dec(t, "1000"), TargetDate: at(2024, 12, 1)})
	if err != nil {
		t.Fatalf("InsertGoal: %v", err)
	}
	other, _ := s.InsertGoal(ctx, model.SavingsGoal{Name: "Car", TargetAmount: dec(t, "9000"), TargetDate: at(2024, 6, 1)})

	clock = at(2024, 2, 1)
	if err := s.UpdateGoalAmount(ctx, g.ID, dec(t, "1000")); err != nil {
		t.Fatalf("UpdateGoalAmount: %v", err)
	}
	got, _, _ := s.Goal(ctx, g.ID)
	if got.IsCompleted {
		t.Fatal("reaching the target must not complete the goal")
	}
	if !got.UpdatedAt.Equal(clock) || !got.CreatedAt.Equal(at(2024, 1, 1)) {
		t.Fatalf("timestamps = created %s updated %s", got.CreatedAt, got.UpdatedAt)
	}

	active, _ := s.ActiveGoals(ctx)
	if len(active) != 2 || active[0].ID != other.ID {
		t.Fatalf("active goals should be ordered by target date: %+v", active)
	}

	if err := s.SetGoalCompleted(ctx, g.ID, true); err != nil {
		t.Fatalf("SetGoalCompleted: %v", err)
	}
	active, _ = s.ActiveGoals(ctx)
	done, _ := s.CompletedGoals(ctx)
	if len(active) != 1 || len(done) != 1 || done[0].ID != g.ID {
		t.Fatalf("got %d active, %d completed", len(active), len(done))
	}
	if err := s.UpdateGoalAmount(ctx, g.ID, dec(t, "-5")); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("negative amount: got %v, want ErrInvalidInput", err)
	}
	if err := s.SetGoalCompleted(ctx, "nope", true); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing goal: got %v, want ErrNotFound", err)
	}
}

func TestBillQueries(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	mk := func(title string, due time.Time, paid bool) model.BillReminder {
		b, err := s.InsertBill(ctx, model.BillReminder{
			Title: title, Amount: dec(t, "50"), DueDate: due, Category: model.CategoryUtilities, IsPaid: paid,
		})
		if err != nil {
			t.Fatalf("InsertBill(%s): %v", title, err)
		}
		return b
	}
	power := mk("Power", at(2024, 3, 10), false)
	mk("Water", at(2024, 3, 20), false)
	mk("Phone", at(2024, 3, 5), true)

	if power.ReminderDaysBefore != model.DefaultReminderDaysBefore {
		t.Fatalf("reminder days = %d, want default", power.ReminderDaysBefore)
	}

	overdue, err := s.OverdueBills(ctx, at(2024, 3, 15))
	if err != nil || len(overdue) != 1 || overdue[0].Title != "Power" {
		t.Fatalf("OverdueBills = %+v, %v", overdue, err)
	}
	unpaid, _ := s.UnpaidBills(ctx)
	if len(unpaid) != 2 {
		t.Fatalf("got %d unpaid, want 2", len(unpaid))
	}
	ranged, _ := s.BillsByDateRange(ctx, at(2024, 3, 1), at(2024, 3, 12))
	if len(ranged) != 2 || ranged[0].Title != "Phone" {
		t.Fatalf("BillsByDateRange = %+v", ranged)
	}

	if err := s.UpdateBillPaymentStatus(ctx, power.ID, true); err != nil {
		t.Fatalf("UpdateBillPaymentStatus: %v", err)
	}
	overdue, _ = s.OverdueBills(ctx, at(2024, 3, 15))
	if len(overdue) != 0 {
		t.Fatalf("paid bill still overdue: %+v", overdue)
	}

	_, err = s.InsertBill(ctx, model.BillReminder{Title: "Gym", Amount: dec(t, "30"), DueDate: at(2024, 4, 1), Category: model.CategoryHealthcare, IsRecurring: true})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("recurring without interval: got %v, want ErrInvalidInput", err)
	}
}

func TestInsertTransactionsIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	good := model.Transaction{Amount: dec(t, "10"), Type: model.Expense, Category: model.CategoryFood, Date: at(2024, 2, 1)}
	bad := model.Transaction{Amount: dec(t, "5"), Type: model.Income, Category: model.CategoryFood, Date: at(2024, 2, 2)}

	if _, err := s.InsertTransactions(ctx, []model.Transaction{good, bad}); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	all, err := s.AllTransactions(ctx)
	if err != nil {
		t.Fatalf("AllTransactions: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("got %d rows after a rejected batch, want 0", len(all))
	}

	ch, cancel := s.Subscribe(4)
	defer cancel()

	second := good
	second.Amount = dec(t, "2.125")
	saved, err := s.InsertTransactions(ctx, []model.Transaction{good, second})
	if err != nil {
		t.Fatalf("InsertTransactions: %v", err)
	}
	if len(saved) != 2 || saved[0].ID == "" || saved[0].ID == saved[1].ID {
		t.Fatalf("saved = %+v", saved)
	}
	if all, _ = s.AllTransactions(ctx); len(all) != 2 {
		t.Fatalf("got %d rows, want 2", len(all))
	}
	for range saved {
		select {
		case c := <-ch:
			if c.Op != OpInsert {
				t.Fatalf("got %+v, want insert", c)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for batch change")
		}
	}
}

func TestSubscribeReceivesWrites(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	ch, cancel := s.Subscribe(4)
	defer cancel()

	tx, err := s.InsertTransaction(ctx, model.Transaction{Amount: dec(t, "1"), Type: model.Income, Category: model.CategoryBonus, Date: at(2024, 1, 1)})
	if err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	for _, want := range []Op{OpInsert, OpDelete} {
		select {
		case c := <-ch:
			if c.Kind != KindTransaction || c.Op != want || c.ID != tx.ID {
				t.Fatalf("got %+v, want %s of %s", c, want, tx.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}
}

func TestPipelineLoaderOverStore(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	inserts := []model.Transaction{
		{Amount: dec(t, "10000"), Type: model.Income, Category: model.CategorySalary, Date: at(2024, 3, 1)},
		{Amount: dec(t, "850"), Type: model.Expense, Category: model.CategoryFood, Date: at(2024, 3, 4)},
	}
	for _, tx := range inserts {
		if _, err := s.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("InsertTransaction: %v", err)
		}
	}
	if _, err := s.InsertBudget(ctx, model.Budget{Category: model.CategoryFood, MonthlyLimit: dec(t, "1000"), Month: 3, Year: 2024}); err != nil {
		t.Fatalf("InsertBudget: %v", err)
	}

	l := pipeline.NewLoader(s)
	l.Now = func() time.Time { return at(2024, 3, 20) }

	ov, err := l.Budgets(ctx, l.Now())
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(ov.Statuses) != 1 || ov.Statuses[0].PercentageUsed != 85 {
		t.Fatalf("statuses = %+v", ov.Statuses)
	}

	recs, err := l.Recommendations(ctx, l.Now())
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Food Budget Near Limit" {
		t.Fatalf("recommendations = %+v", recs)
	}
}
