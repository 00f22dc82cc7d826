package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/util"
	"github.com/shopspring/decimal"
)

// GoalProgress is the derived progress state of a single goal.
type GoalProgress struct {
	GoalID          uuid.UUID         `json:"goalId"`
	Title           string            `json:"title"`
	Category        *string           `json:"category,omitempty"`
	Status          domain.GoalStatus `json:"status"`
	TargetAmount    decimal.Decimal   `json:"targetAmount"`
	CurrentAmount   decimal.Decimal   `json:"currentAmount"`
	ProgressPercent decimal.Decimal   `json:"progressPercent"`
	Remaining       decimal.Decimal   `json:"remaining"`
	TargetDate      *time.Time        `json:"targetDate,omitempty"`
	IsOverdue       bool              `json:"isOverdue"`
	DaysToComplete  *int              `json:"daysToComplete,omitempty"`
}

// GoalProgressOf derives the progress state for one goal against an
// explicitly supplied "today". ProgressPercent is 0 (never NaN) when the
// target is 0, Remaining may go negative for over-funded goals, and only
// active goals with a past target date count as overdue. A negative target
// amount is a caller contract violation and is rejected.
func GoalProgressOf(goal *domain.Goal, today time.Time) (GoalProgress, error) {
	if goal.TargetAmount.IsNegative() {
		return GoalProgress{}, domain.ErrInvalidTargetAmount
	}

	p := GoalProgress{
		GoalID:          goal.ID,
		Title:           goal.Title,
		Category:        goal.Category,
		Status:          goal.Status,
		TargetAmount:    goal.TargetAmount,
		CurrentAmount:   goal.CurrentAmount,
		ProgressPercent: decimal.Zero,
		Remaining:       goal.TargetAmount.Sub(goal.CurrentAmount),
		TargetDate:      goal.TargetDate,
	}

	if goal.TargetAmount.IsPositive() {
		p.ProgressPercent = goal.CurrentAmount.Div(goal.TargetAmount).Mul(oneHundred)
	}

	if goal.Status == domain.GoalStatusActive && goal.TargetDate != nil {
		p.IsOverdue = util.StartOfDay(*goal.TargetDate).Before(util.StartOfDay(today))
	}

	if goal.Status == domain.GoalStatusCompleted && goal.CompletedAt != nil && !goal.CreatedAt.IsZero() {
		days := util.DaysBetweenCeil(goal.CreatedAt, *goal.CompletedAt)
		p.DaysToComplete = &days
	}

	return p, nil
}

// GoalProgressAll derives progress for every goal, preserving input order.
func GoalProgressAll(goals []*domain.Goal, today time.Time) ([]GoalProgress, error) {
	progresses := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		p, err := GoalProgressOf(g, today)
		if err != nil {
			return nil, err
		}
		progresses = append(progresses, p)
	}
	return progresses, nil
}

// OverdueGoals filters the overdue goals and sorts them ascending by target
// date: the earliest deadline is the most overdue ("oldest debt" framing).
// The sort is stable so equal deadlines keep their input order.
func OverdueGoals(progresses []GoalProgress) []GoalProgress {
	overdue := []GoalProgress{}
	for _, p := range progresses {
		if p.IsOverdue && p.TargetDate != nil {
			overdue = append(overdue, p)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].TargetDate.Before(*overdue[j].TargetDate)
	})
	return overdue
}
