package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"
)

const billColumns = `id, title, amount, due_date, category, description, is_paid,
	is_recurring, recurring_interval, reminder_days_before, created_at, updated_at`

// InsertBill validates and stores b. A zero ReminderDaysBefore is replaced
// with the default.
func (s *Store) InsertBill(ctx context.Context, b model.BillReminder) (model.BillReminder, error) {
	if b.ReminderDaysBefore == 0 {
		b.ReminderDaysBefore = model.DefaultReminderDaysBefore
	}
	if err := b.Validate(); err != nil {
		return model.BillReminder{}, err
	}
	now := s.now()
	if b.ID == "" {
		b.ID = newID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO bill_reminders (`+billColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Amount.String(), formatTime(b.DueDate), string(b.Category),
		nullString(b.Description), boolInt(b.IsPaid), boolInt(b.IsRecurring),
		nullString(string(b.RecurringInterval)), b.ReminderDaysBefore,
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return model.BillReminder{}, unavailable("inserting bill", err)
	}

	s.log.Debug("stored", log.FieldKind, KindBill, log.FieldID, b.ID)
	s.publish(KindBill, OpInsert, b.ID)
	return b, nil
}

// UpdateBill rewrites an existing bill and bumps its update time.
func (s *Store) UpdateBill(ctx context.Context, b model.BillReminder) error {
	if err := b.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE bill_reminders
		SET title = ?, amount = ?, due_date = ?, category = ?, description = ?, is_paid = ?,
		    is_recurring = ?, recurring_interval = ?, reminder_days_before = ?, updated_at = ?
		WHERE id = ?`,
		b.Title, b.Amount.String(), formatTime(b.DueDate), string(b.Category), nullString(b.Description),
		boolInt(b.IsPaid), boolInt(b.IsRecurring), nullString(string(b.RecurringInterval)),
		b.ReminderDaysBefore, formatTime(s.now()), b.ID,
	)
	if err != nil {
		return unavailable("updating bill", err)
	}
	if err := mustAffect(res, "bill", b.ID); err != nil {
		return err
	}
	s.publish(KindBill, OpUpdate, b.ID)
	return nil
}

// UpdateBillPaymentStatus marks a bill paid or unpaid.
func (s *Store) UpdateBillPaymentStatus(ctx context.Context, id string, paid bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE bill_reminders SET is_paid = ?, updated_at = ? WHERE id = ?`,
		boolInt(paid), formatTime(s.now()), id)
	if err != nil {
		return unavailable("updating bill payment", err)
	}
	if err := mustAffect(res, "bill", id); err != nil {
		return err
	}
	s.publish(KindBill, OpUpdate, id)
	return nil
}

// DeleteBill removes a bill.
func (s *Store) DeleteBill(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bill_reminders WHERE id = ?", id)
	if err != nil {
		return unavailable("deleting bill", err)
	}
	if err := mustAffect(res, "bill", id); err != nil {
		return err
	}
	s.publish(KindBill, OpDelete, id)
	return nil
}

// Bill looks up one bill by ID.
func (s *Store) Bill(ctx context.Context, id string) (model.BillReminder, bool, error) {
	b, err := scanBill(s.db.QueryRowContext(ctx, "SELECT "+billColumns+" FROM bill_reminders WHERE id = ?", id))
	if noRows(err) {
		return model.BillReminder{}, false, nil
	}
	if err != nil {
		return model.BillReminder{}, false, err
	}
	return b, true, nil
}

// AllBills returns every bill by due date.
func (s *Store) AllBills(ctx context.Context) ([]model.BillReminder, error) {
	return s.queryBills(ctx, "SELECT "+billColumns+" FROM bill_reminders ORDER BY due_date ASC")
}

// UnpaidBills returns bills not yet paid by due date.
func (s *Store) UnpaidBills(ctx context.Context) ([]model.BillReminder, error) {
	return s.queryBills(ctx, "SELECT "+billColumns+` FROM bill_reminders
		WHERE is_paid = 0 ORDER BY due_date ASC`)
}

// OverdueBills returns unpaid bills due on or before date.
func (s *Store) OverdueBills(ctx context.Context, date time.Time) ([]model.BillReminder, error) {
	return s.queryBills(ctx, "SELECT "+billColumns+` FROM bill_reminders
		WHERE due_date <= ? AND is_paid = 0 ORDER BY due_date ASC`, formatTime(date))
}

// BillsByDateRange returns bills due within [start, end].
func (s *Store) BillsByDateRange(ctx context.Context, start, end time.Time) ([]model.BillReminder, error) {
	return s.queryBills(ctx, "SELECT "+billColumns+` FROM bill_reminders
		WHERE due_date BETWEEN ? AND ? ORDER BY due_date ASC`, formatTime(start), formatTime(end))
}

// BillsByCategory returns a category's bills by due date.
func (s *Store) BillsByCategory(ctx context.Context, c model.Category) ([]model.BillReminder, error) {
	return s.queryBills(ctx, "SELECT "+billColumns+` FROM bill_reminders
		WHERE category = ? ORDER BY due_date ASC`, string(c))
}

func (s *Store) queryBills(ctx context.Context, query string, args ...any) ([]model.BillReminder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("querying bills", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.BillReminder
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("reading bills", err)
	}
	return out, nil
}

func scanBill(sc scanner) (model.BillReminder, error) {
	var (
		b                model.BillReminder
		amount, due, cat string
		created, upd     string
		desc, interval   sql.NullString
		paid, recurring  int
	)
	err := sc.Scan(&b.ID, &b.Title, &amount, &due, &cat, &desc, &paid,
		&recurring, &interval, &b.ReminderDaysBefore, &created, &upd)
	if err != nil {
		if noRows(err) {
			return b, err
		}
		return b, unavailable("scanning bill", err)
	}

	if b.Amount, err = parseAmount(amount); err != nil {
		return b, err
	}
	if b.DueDate, err = parseTime(due); err != nil {
		return b, err
	}
	if b.CreatedAt, err = parseTime(created); err != nil {
		return b, err
	}
	if b.UpdatedAt, err = parseTime(upd); err != nil {
		return b, err
	}
	b.Category = model.Category(cat)
	b.Description = desc.String
	b.RecurringInterval = model.RecurringInterval(interval.String)
	b.IsPaid = paid != 0
	b.IsRecurring = recurring != 0
	return b, nil
}
