package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

const txnColumns = `id, amount, type, category, description, date, created_at`

// InsertTransaction validates and stores tx, assigning an ID and creation
// time when missing. An existing row with the same ID is replaced.
func (s *Store) InsertTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return model.Transaction{}, err
	}
	tx = s.stampTransaction(tx)
	if err := insertTransaction(ctx, s.db, tx); err != nil {
		return model.Transaction{}, err
	}

	s.log.Debug("stored", log.FieldKind, KindTransaction, log.FieldID, tx.ID)
	s.publish(KindTransaction, OpInsert, tx.ID)
	return tx, nil
}

// InsertTransactions stores txs in one database transaction: either every
// record is written or none is. All records are validated first.
func (s *Store) InsertTransactions(ctx context.Context, txs []model.Transaction) ([]model.Transaction, error) {
	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out[i] = s.stampTransaction(tx)
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("beginning import", err)
	}
	defer func() { _ = dbtx.Rollback() }()

	for i, tx := range out {
		if err := insertTransaction(ctx, dbtx, tx); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return nil, unavailable("committing import", err)
	}

	s.log.Debug("stored batch", log.FieldKind, KindTransaction, log.FieldCount, len(out))
	for _, tx := range out {
		s.publish(KindTransaction, OpInsert, tx.ID)
	}
	return out, nil
}

func (s *Store) stampTransaction(tx model.Transaction) model.Transaction {
	if tx.ID == "" {
		tx.ID = newID()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now()
	}
	return tx
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, tx model.Transaction) error {
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO transactions (`+txnColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Amount.String(), string(tx.Type), string(tx.Category), tx.Description,
		formatTime(tx.Date), formatTime(tx.CreatedAt),
	)
	if err != nil {
		return unavailable("inserting transaction", err)
	}
	return nil
}

// UpdateTransaction rewrites an existing transaction's amount, type,
// category, description, and date.
func (s *Store) UpdateTransaction(ctx context.Context, tx model.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE transactions
		SET amount = ?, type = ?, category = ?, description = ?, date = ?
		WHERE id = ?`,
		tx.Amount.String(), string(tx.Type), string(tx.Category), tx.Description, formatTime(tx.Date), tx.ID,
	)
	if err != nil {
		return unavailable("updating transaction", err)
	}
	if err := mustAffect(res, "transaction", tx.ID); err != nil {
		return err
	}
	s.publish(KindTransaction, OpUpdate, tx.ID)
	return nil
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return unavailable("deleting transaction", err)
	}
	if err := mustAffect(res, "transaction", id); err != nil {
		return err
	}
	s.publish(KindTransaction, OpDelete, id)
	return nil
}

// Transaction looks up one transaction. ok is false when it does not exist.
func (s *Store) Transaction(ctx context.Context, id string) (tx model.Transaction, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+txnColumns+" FROM transactions WHERE id = ?", id)
	tx, err = scanTransaction(row)
	if noRows(err) {
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, err
	}
	return tx, true, nil
}

// AllTransactions returns every transaction, newest first.
func (s *Store) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txnColumns+" FROM transactions ORDER BY date DESC")
}

// TransactionsByDateRange returns transactions dated within [start, end], newest first.
func (s *Store) TransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txnColumns+` FROM transactions
		WHERE date BETWEEN ? AND ? ORDER BY date DESC`, formatTime(start), formatTime(end))
}

// TransactionsByCategory returns a category's transactions, newest first.
func (s *Store) TransactionsByCategory(ctx context.Context, c model.Category) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txnColumns+` FROM transactions
		WHERE category = ? ORDER BY date DESC`, string(c))
}

// TransactionsByType returns income or expense transactions, newest first.
func (s *Store) TransactionsByType(ctx context.Context, t model.TransactionType) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txnColumns+` FROM transactions
		WHERE type = ? ORDER BY date DESC`, string(t))
}

// RecentTransactions returns the newest limit transactions.
func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txnColumns+` FROM transactions
		ORDER BY date DESC, created_at DESC LIMIT ?`, limit)
}

// SumTransactionsByType sums one type's amounts within [start, end].
// The result is invalid when no transaction matched.
func (s *Store) SumTransactionsByType(ctx context.Context, t model.TransactionType, start, end time.Time) (decimal.NullDecimal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT amount FROM transactions
		WHERE type = ? AND date BETWEEN ? AND ?`, string(t), formatTime(start), formatTime(end))
	if err != nil {
		return decimal.NullDecimal{}, unavailable("summing by type", err)
	}
	return sumAmounts(rows)
}

// SumTransactionsByCategory sums one category's amounts within [start, end].
// The result is invalid when no transaction matched.
func (s *Store) SumTransactionsByCategory(ctx context.Context, c model.Category, start, end time.Time) (decimal.NullDecimal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT amount FROM transactions
		WHERE category = ? AND date BETWEEN ? AND ?`, string(c), formatTime(start), formatTime(end))
	if err != nil {
		return decimal.NullDecimal{}, unavailable("summing by category", err)
	}
	return sumAmounts(rows)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("querying transactions", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("reading transactions", err)
	}
	return out, nil
}

func scanTransaction(sc scanner) (model.Transaction, error) {
	var (
		tx               model.Transaction
		amount, typ, cat string
		date, created    string
	)
	if err := sc.Scan(&tx.ID, &amount, &typ, &cat, &tx.Description, &date, &created); err != nil {
		if noRows(err) {
			return tx, err
		}
		return tx, unavailable("scanning transaction", err)
	}

	var err error
	if tx.Amount, err = parseAmount(amount); err != nil {
		return tx, err
	}
	if tx.Date, err = parseTime(date); err != nil {
		return tx, err
	}
	if tx.CreatedAt, err = parseTime(created); err != nil {
		return tx, err
	}
	tx.Type = model.TransactionType(typ)
	tx.Category = model.Category(cat)
	return tx, nil
}
