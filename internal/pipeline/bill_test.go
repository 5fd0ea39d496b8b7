package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/finburn/internal/model"
)

func TestEvaluateBillOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	b := model.BillReminder{Title: "Internet", DueDate: now.AddDate(0, 0, -2)}

	st := EvaluateBill(b, now)
	if !st.IsOverdue {
		t.Fatal("unpaid bill two days past due should be overdue")
	}
	if st.DaysUntilDue != -2 {
		t.Fatalf("days until due = %d, want -2", st.DaysUntilDue)
	}
}

func TestEvaluateBillPaidNeverOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	for _, offset := range []int{-400, -30, -1, 0, 1, 30} {
		b := model.BillReminder{DueDate: now.AddDate(0, 0, offset), IsPaid: true}
		if EvaluateBill(b, now).IsOverdue {
			t.Fatalf("paid bill at offset %d flagged overdue", offset)
		}
	}
}

func TestEvaluateBillTruncatesDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		due  time.Time
		want int
	}{
		{now.Add(36 * time.Hour), 1},
		{now.Add(-36 * time.Hour), -1},
		{now.Add(23 * time.Hour), 0},
		{now, 0},
	}
	for _, tt := range tests {
		if got := EvaluateBill(model.BillReminder{DueDate: tt.due}, now).DaysUntilDue; got != tt.want {
			t.Fatalf("due %s: got %d, want %d", tt.due, got, tt.want)
		}
	}
}

func TestUpcomingBills(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	bills := []model.BillReminder{
		{Title: "late", DueDate: now.AddDate(0, 0, 31)},
		{Title: "rent", DueDate: now.AddDate(0, 0, 10)},
		{Title: "phone", DueDate: now.AddDate(0, 0, 2), IsPaid: true},
		{Title: "past", DueDate: now.AddDate(0, 0, -1)},
		{Title: "edge", DueDate: now.AddDate(0, 0, 30)},
	}

	got := UpcomingBills(bills, now, 30)
	want := []string{"phone", "rent", "edge"}
	if len(got) != len(want) {
		t.Fatalf("got %d bills, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Bill.Title != w {
			t.Fatalf("bill %d = %s, want %s", i, got[i].Bill.Title, w)
		}
	}
}

func TestOverdueAndReminders(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	bills := []model.BillReminder{
		{Title: "old", DueDate: now.AddDate(0, 0, -5)},
		{Title: "paid", DueDate: now.AddDate(0, 0, -3), IsPaid: true},
		{Title: "soon", DueDate: now.AddDate(0, 0, 2), ReminderDaysBefore: 3},
		{Title: "later", DueDate: now.AddDate(0, 0, 9), ReminderDaysBefore: 3},
	}

	overdue := OverdueBills(bills, now)
	if len(overdue) != 1 || overdue[0].Bill.Title != "old" {
		t.Fatalf("overdue = %+v, want only old", overdue)
	}
	rem := DueReminders(bills, now)
	if len(rem) != 1 || rem[0].Bill.Title != "soon" {
		t.Fatalf("reminders = %+v, want only soon", rem)
	}
}
