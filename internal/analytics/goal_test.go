package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func activeGoal(target, current int64) *domain.Goal {
	return &domain.Goal{
		ID:            uuid.New(),
		Title:         "Emergency Fund",
		TargetAmount:  decimal.NewFromInt(target),
		CurrentAmount: decimal.NewFromInt(current),
		Status:        domain.GoalStatusActive,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGoalProgressOf_BasicScenario(t *testing.T) {
	p, err := GoalProgressOf(activeGoal(10000, 2500), today)

	require.NoError(t, err)
	assert.Equal(t, "25.00", p.ProgressPercent.StringFixed(2))
	assert.Equal(t, "7500.00", p.Remaining.StringFixed(2))
	assert.False(t, p.IsOverdue)
	assert.Nil(t, p.DaysToComplete)
}

func TestGoalProgressOf_ZeroTargetIsZeroProgress(t *testing.T) {
	g := activeGoal(0, 2500)
	g.TargetAmount = decimal.Zero

	p, err := GoalProgressOf(g, today)

	require.NoError(t, err)
	assert.Equal(t, "0.00", p.ProgressPercent.StringFixed(2))
	assert.Equal(t, "-2500.00", p.Remaining.StringFixed(2))
}

func TestGoalProgressOf_OverFundingGoesNegative(t *testing.T) {
	p, err := GoalProgressOf(activeGoal(1000, 1500), today)

	require.NoError(t, err)
	assert.Equal(t, "150.00", p.ProgressPercent.StringFixed(2))
	assert.Equal(t, "-500.00", p.Remaining.StringFixed(2))
}

func TestGoalProgressOf_NegativeTargetIsRejected(t *testing.T) {
	g := activeGoal(0, 0)
	g.TargetAmount = decimal.NewFromInt(-1)

	_, err := GoalProgressOf(g, today)

	assert.ErrorIs(t, err, domain.ErrInvalidTargetAmount)
}

func TestGoalProgressOf_Overdue(t *testing.T) {
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	completedAt := today

	tests := []struct {
		name       string
		status     domain.GoalStatus
		targetDate *time.Time
		completed  *time.Time
		want       bool
	}{
		{"active past deadline", domain.GoalStatusActive, &yesterday, nil, true},
		{"active future deadline", domain.GoalStatusActive, &tomorrow, nil, false},
		{"active deadline today", domain.GoalStatusActive, &today, nil, false},
		{"active without deadline", domain.GoalStatusActive, nil, nil, false},
		{"completed past deadline", domain.GoalStatusCompleted, &yesterday, &completedAt, false},
		{"paused past deadline", domain.GoalStatusPaused, &yesterday, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := activeGoal(1000, 100)
			g.Status = tt.status
			g.TargetDate = tt.targetDate
			g.CompletedAt = tt.completed

			p, err := GoalProgressOf(g, today)

			require.NoError(t, err)
			assert.Equal(t, tt.want, p.IsOverdue)
		})
	}
}

func TestGoalProgressOf_DaysToComplete(t *testing.T) {
	g := activeGoal(1000, 1000)
	g.Status = domain.GoalStatusCompleted
	g.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	completedAt := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	g.CompletedAt = &completedAt

	p, err := GoalProgressOf(g, today)

	require.NoError(t, err)
	require.NotNil(t, p.DaysToComplete)
	// 30 full days plus a partial day, ceiling
	assert.Equal(t, 31, *p.DaysToComplete)
}

func TestOverdueGoals_SortedByEarliestDeadline(t *testing.T) {
	jan := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	mkProgress := func(title string, target time.Time) GoalProgress {
		return GoalProgress{
			GoalID:     uuid.New(),
			Title:      title,
			Status:     domain.GoalStatusActive,
			TargetDate: &target,
			IsOverdue:  true,
		}
	}

	overdue := OverdueGoals([]GoalProgress{
		mkProgress("March", mar),
		mkProgress("May", may),
		mkProgress("January", jan),
		{GoalID: uuid.New(), Title: "Not overdue", Status: domain.GoalStatusActive},
	})

	require.Len(t, overdue, 3)
	assert.Equal(t, "January", overdue[0].Title)
	assert.Equal(t, "March", overdue[1].Title)
	assert.Equal(t, "May", overdue[2].Title)
}

func TestGoalProgressAll_PreservesOrder(t *testing.T) {
	first := activeGoal(100, 10)
	first.Title = "First"
	second := activeGoal(100, 20)
	second.Title = "Second"

	progresses, err := GoalProgressAll([]*domain.Goal{first, second}, today)

	require.NoError(t, err)
	require.Len(t, progresses, 2)
	assert.Equal(t, "First", progresses[0].Title)
	assert.Equal(t, "Second", progresses[1].Title)
}
