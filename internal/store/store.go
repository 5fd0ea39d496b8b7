// Package store persists transactions, budgets, savings goals, and bill
// reminders in SQLite. Reads return snapshots; writes are announced on an
// in-process change feed.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/finburn/internal/log"
	"github.com/theirongolddev/finburn/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// timeLayout is fixed-width UTC with milliseconds so stored timestamps
// compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Store is the SQLite-backed record store.
type Store struct {
	db   *sql.DB
	log  *log.Logger
	feed *feed
	now  func() time.Time
}

// Open opens or creates the database at dbPath and applies migrations.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Nop()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := Migrate(dbPath); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening db: %w", model.ErrStoreUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: opening db: %w", model.ErrStoreUnavailable, err)
	}

	s := &Store{
		db:   db,
		log:  logger.WithComponent(log.ComponentStore),
		feed: newFeed(),
		now:  time.Now,
	}
	s.log.Debug("opened", log.FieldPath, dbPath)
	return s, nil
}

// Close closes the database and every change subscription.
func (s *Store) Close() error {
	s.feed.close()
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func newID() string {
	return uuid.NewString()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t.Local(), nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing stored amount %q: %w", s, err)
	}
	return d, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// unavailable wraps a driver error so callers can match ErrStoreUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}

// mustAffect turns a zero-row write into ErrNotFound.
func mustAffect(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("checking rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}
	return nil
}

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// sumAmounts folds TEXT amounts into an exact sum. The result is invalid
// when no rows matched, mirroring SQL SUM over an empty set.
func sumAmounts(rows *sql.Rows) (decimal.NullDecimal, error) {
	defer func() { _ = rows.Close() }()

	var out decimal.NullDecimal
	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.NullDecimal{}, unavailable("scanning amount", err)
		}
		amt, err := parseAmount(raw)
		if err != nil {
			return decimal.NullDecimal{}, err
		}
		total = total.Add(amt)
		out.Valid = true
	}
	if err := rows.Err(); err != nil {
		return decimal.NullDecimal{}, unavailable("reading amounts", err)
	}
	out.Decimal = total
	return out, nil
}
