package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/finburn/internal/model"
)

// DefaultBillHorizonDays is how far ahead "upcoming" looks.
const DefaultBillHorizonDays = 30

// EvaluateBill annotates a bill relative to ref. Paid bills are never overdue.
func EvaluateBill(b model.BillReminder, ref time.Time) model.BillStatus {
	return model.BillStatus{
		Bill:         b,
		IsOverdue:    b.DueDate.Before(ref) && !b.IsPaid,
		DaysUntilDue: daysBetween(ref, b.DueDate),
	}
}

// UpcomingBills selects bills, paid or not, due within [ref, ref+horizonDays],
// sorted by due date ascending.
func UpcomingBills(bills []model.BillReminder, ref time.Time, horizonDays int) []model.BillStatus {
	w := Window{Start: ref, End: ref.AddDate(0, 0, horizonDays)}

	var out []model.BillStatus
	for _, b := range bills {
		if w.Contains(b.DueDate) {
			out = append(out, EvaluateBill(b, ref))
		}
	}
	sortByDue(out)
	return out
}

// OverdueBills selects unpaid bills due before ref, oldest first.
func OverdueBills(bills []model.BillReminder, ref time.Time) []model.BillStatus {
	var out []model.BillStatus
	for _, b := range bills {
		if st := EvaluateBill(b, ref); st.IsOverdue {
			out = append(out, st)
		}
	}
	sortByDue(out)
	return out
}

// DueReminders selects unpaid bills whose reminder window is open at ref.
func DueReminders(bills []model.BillReminder, ref time.Time) []model.BillStatus {
	var out []model.BillStatus
	for _, b := range bills {
		if st := EvaluateBill(b, ref); st.ReminderDue() {
			out = append(out, st)
		}
	}
	sortByDue(out)
	return out
}

func sortByDue(s []model.BillStatus) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Bill.DueDate.Before(s[j].Bill.DueDate)
	})
}
