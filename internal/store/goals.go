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

const goalColumns = `id, name, target_amount, current_amount, target_date, description,
	is_completed, created_at, updated_at`

// InsertGoal validates and stores g. Completion is never derived from the
// amounts; it is stored as given.
func (s *Store) InsertGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return model.SavingsGoal{}, err
	}
	now := s.now()
	if g.ID == "" {
		g.ID = newID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO savings_goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount.String(), g.CurrentAmount.String(), formatTime(g.TargetDate),
		nullString(g.Description), boolInt(g.IsCompleted), formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
	)
	if err != nil {
		return model.SavingsGoal{}, unavailable("inserting goal", err)
	}

	s.log.Debug("stored", log.FieldKind, KindGoal, log.FieldID, g.ID)
	s.publish(KindGoal, OpInsert, g.ID)
	return g, nil
}

// UpdateGoal rewrites an existing goal and bumps its update time.
func (s *Store) UpdateGoal(ctx context.Context, g model.SavingsGoal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE savings_goals
		SET name = ?, target_amount = ?, current_amount = ?, target_date = ?, description = ?,
		    is_completed = ?, updated_at = ?
		WHERE id = ?`,
		g.Name, g.TargetAmount.String(), g.CurrentAmount.String(), formatTime(g.TargetDate),
		nullString(g.Description), boolInt(g.IsCompleted), formatTime(s.now()), g.ID,
	)
	if err != nil {
		return unavailable("updating goal", err)
	}
	if err := mustAffect(res, "goal", g.ID); err != nil {
		return err
	}
	s.publish(KindGoal, OpUpdate, g.ID)
	return nil
}

// UpdateGoalAmount sets a goal's saved amount.
func (s *Store) UpdateGoalAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: current amount cannot be negative, got %s", model.ErrInvalidInput, amount)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE savings_goals SET current_amount = ?, updated_at = ? WHERE id = ?`,
		amount.String(), formatTime(s.now()), id)
	if err != nil {
		return unavailable("updating goal amount", err)
	}
	if err := mustAffect(res, "goal", id); err != nil {
		return err
	}
	s.publish(KindGoal, OpUpdate, id)
	return nil
}

// SetGoalCompleted flips a goal's completion flag.
func (s *Store) SetGoalCompleted(ctx context.Context, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE savings_goals SET is_completed = ?, updated_at = ? WHERE id = ?`,
		boolInt(done), formatTime(s.now()), id)
	if err != nil {
		return unavailable("updating goal completion", err)
	}
	if err := mustAffect(res, "goal", id); err != nil {
		return err
	}
	s.publish(KindGoal, OpUpdate, id)
	return nil
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = ?", id)
	if err != nil {
		return unavailable("deleting goal", err)
	}
	if err := mustAffect(res, "goal", id); err != nil {
		return err
	}
	s.publish(KindGoal, OpDelete, id)
	return nil
}

// Goal looks up one goal by ID.
func (s *Store) Goal(ctx context.Context, id string) (model.SavingsGoal, bool, error) {
	g, err := scanGoal(s.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM savings_goals WHERE id = ?", id))
	if noRows(err) {
		return model.SavingsGoal{}, false, nil
	}
	if err != nil {
		return model.SavingsGoal{}, false, err
	}
	return g, true, nil
}

// AllGoals returns every goal by target date.
func (s *Store) AllGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	return s.queryGoals(ctx, "SELECT "+goalColumns+" FROM savings_goals ORDER BY target_date ASC")
}

// ActiveGoals returns goals not marked completed, nearest target first.
func (s *Store) ActiveGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	return s.queryGoals(ctx, "SELECT "+goalColumns+` FROM savings_goals
		WHERE is_completed = 0 ORDER BY target_date ASC`)
}

// CompletedGoals returns completed goals, most recently updated first.
func (s *Store) CompletedGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	return s.queryGoals(ctx, "SELECT "+goalColumns+` FROM savings_goals
		WHERE is_completed = 1 ORDER BY updated_at DESC`)
}

// GoalsByDateRange returns goals whose target date falls within [start, end].
func (s *Store) GoalsByDateRange(ctx context.Context, start, end time.Time) ([]model.SavingsGoal, error) {
	return s.queryGoals(ctx, "SELECT "+goalColumns+` FROM savings_goals
		WHERE target_date BETWEEN ? AND ? ORDER BY target_date ASC`, formatTime(start), formatTime(end))
}

func (s *Store) queryGoals(ctx context.Context, query string, args ...any) ([]model.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("querying goals", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("reading goals", err)
	}
	return out, nil
}

func scanGoal(sc scanner) (model.SavingsGoal, error) {
	var (
		g                        model.SavingsGoal
		target, current          string
		targetDate, created, upd string
		desc                     sql.NullString
		completed                int
	)
	err := sc.Scan(&g.ID, &g.Name, &target, &current, &targetDate, &desc, &completed, &created, &upd)
	if err != nil {
		if noRows(err) {
			return g, err
		}
		return g, unavailable("scanning goal", err)
	}

	if g.TargetAmount, err = parseAmount(target); err != nil {
		return g, err
	}
	if g.CurrentAmount, err = parseAmount(current); err != nil {
		return g, err
	}
	if g.TargetDate, err = parseTime(targetDate); err != nil {
		return g, err
	}
	if g.CreatedAt, err = parseTime(created); err != nil {
		return g, err
	}
	if g.UpdatedAt, err = parseTime(upd); err != nil {
		return g, err
	}
	if desc.Valid {
		g.Description = desc.String
	}
	g.IsCompleted = completed != 0
	return g, nil
}
