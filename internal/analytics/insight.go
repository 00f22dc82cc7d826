package analytics

import (
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// NoInsight is the sentinel rendered when an insight has no subject,
// e.g. no goal is overdue or no category has any activity.
const NoInsight = "-"

// GoalInsights summarizes a set of goal progress results for a period.
// Every "average of zero items" resolves to 0, never an error or NaN;
// report views render these values directly without a presence check.
type GoalInsights struct {
	TotalGoals                 int             `json:"totalGoals"`
	CompletedGoals             int             `json:"completedGoals"`
	OverdueGoals               int             `json:"overdueGoals"`
	CompletionRate             decimal.Decimal `json:"completionRate"`
	AverageGoalValue           decimal.Decimal `json:"averageGoalValue"`
	AverageMonthlyContribution decimal.Decimal `json:"averageMonthlyContribution"`
	FastestProgressingGoal     string          `json:"fastestProgressingGoal"`
	MostOverdueGoal            string          `json:"mostOverdueGoal"`
}

// MostActiveCategory returns the name of the breakdown with the highest
// movement count. Ties go to the first-encountered breakdown in input
// order; strict greater-than comparison keeps that rule stable.
func MostActiveCategory(breakdowns []CategoryBreakdown) string {
	if len(breakdowns) == 0 {
		return NoInsight
	}
	best := breakdowns[0]
	for _, b := range breakdowns[1:] {
		if b.Count > best.Count {
			best = b
		}
	}
	return best.Category
}

// ComputeGoalInsights derives the goal superlatives and ratios for a period.
// months is the number of calendar months in the reporting period and scales
// the average contribution; a non-positive months yields a 0 average.
func ComputeGoalInsights(progresses []GoalProgress, contributions []*domain.GoalContribution, months int) GoalInsights {
	insights := GoalInsights{
		TotalGoals:                 len(progresses),
		CompletionRate:             decimal.Zero,
		AverageGoalValue:           decimal.Zero,
		AverageMonthlyContribution: decimal.Zero,
		FastestProgressingGoal:     NoInsight,
		MostOverdueGoal:            NoInsight,
	}

	targetSum := decimal.Zero
	for _, p := range progresses {
		if p.Status == domain.GoalStatusCompleted {
			insights.CompletedGoals++
		}
		targetSum = targetSum.Add(p.TargetAmount)
	}

	if len(progresses) > 0 {
		count := decimal.NewFromInt(int64(len(progresses)))
		insights.CompletionRate = decimal.NewFromInt(int64(insights.CompletedGoals)).Div(count).Mul(oneHundred)
		insights.AverageGoalValue = targetSum.Div(count)

		fastest := progresses[0]
		for _, p := range progresses[1:] {
			if p.ProgressPercent.GreaterThan(fastest.ProgressPercent) {
				fastest = p
			}
		}
		insights.FastestProgressingGoal = fastest.Title
	}

	overdue := OverdueGoals(progresses)
	insights.OverdueGoals = len(overdue)
	if len(overdue) > 0 {
		insights.MostOverdueGoal = overdue[0].Title
	}

	if months > 0 {
		contributionSum := decimal.Zero
		for _, c := range contributions {
			contributionSum = contributionSum.Add(c.Amount)
		}
		insights.AverageMonthlyContribution = contributionSum.Div(decimal.NewFromInt(int64(months)))
	}

	return insights
}
