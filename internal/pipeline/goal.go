package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
)

// onTrackTolerance is the fraction of linear-pace progress a goal must
// reach to count as on track.
var onTrackTolerance = decimal.NewFromFloat(0.8)

// IsOnTrack decides whether a goal is keeping pace with its target date.
//
// Day counts are whole days, truncated. A goal whose target date is not
// after its creation date is on track only once it is met. Otherwise the
// actual progress must reach 80% of the linear expectation; the
// expectation is capped to [0, 1] so a met goal stays on track after its
// date has passed.
func IsOnTrack(current, target decimal.Decimal, targetDate, createdAt, now time.Time) bool {
	totalDays := daysBetween(createdAt, targetDate)
	if totalDays <= 0 || !target.IsPositive() {
		return current.GreaterThanOrEqual(target)
	}

	daysElapsed := daysBetween(createdAt, now)
	expected := decimal.NewFromInt(int64(daysElapsed)).Div(decimal.NewFromInt(int64(totalDays)))
	if expected.IsNegative() {
		expected = decimal.Zero
	}
	if expected.GreaterThan(decimal.NewFromInt(1)) {
		expected = decimal.NewFromInt(1)
	}
	actual := current.Div(target)

	return actual.GreaterThanOrEqual(expected.Mul(onTrackTolerance))
}

// EvaluateGoal derives progress, remaining amount, and on-track status
// for a goal as of now.
func EvaluateGoal(g model.SavingsGoal, now time.Time) model.GoalProgress {
	gp := model.GoalProgress{
		Goal:            g,
		RemainingAmount: g.TargetAmount.Sub(g.CurrentAmount),
		DaysRemaining:   daysBetween(now, g.TargetDate),
		IsOnTrack:       IsOnTrack(g.CurrentAmount, g.TargetAmount, g.TargetDate, g.CreatedAt, now),
	}
	if g.TargetAmount.IsPositive() {
		gp.ProgressPercentage = g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).InexactFloat64()
	}
	return gp
}

// SummarizeGoals splits goals into active (by target date ascending) and
// completed (most recently updated first) and totals the active ones.
func SummarizeGoals(goals []model.SavingsGoal, now time.Time) model.GoalOverview {
	ov := model.GoalOverview{TotalTarget: decimal.Zero, TotalSaved: decimal.Zero}
	for _, g := range goals {
		gp := EvaluateGoal(g, now)
		if g.IsCompleted {
			ov.Completed = append(ov.Completed, gp)
			continue
		}
		ov.Active = append(ov.Active, gp)
		ov.TotalTarget = ov.TotalTarget.Add(g.TargetAmount)
		ov.TotalSaved = ov.TotalSaved.Add(g.CurrentAmount)
	}

	sort.SliceStable(ov.Active, func(i, j int) bool {
		return ov.Active[i].Goal.TargetDate.Before(ov.Active[j].Goal.TargetDate)
	})
	sort.SliceStable(ov.Completed, func(i, j int) bool {
		return ov.Completed[i].Goal.UpdatedAt.After(ov.Completed[j].Goal.UpdatedAt)
	})
	return ov
}
