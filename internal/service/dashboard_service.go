package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/analytics"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/util"
	"github.com/shopspring/decimal"
)

// DashboardService assembles the dashboard summary for a month
type DashboardService struct {
	movementRepo domain.MovementRepository
	categoryRepo domain.CategoryRepository
	goalRepo     domain.GoalRepository
	now          func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(movementRepo domain.MovementRepository, categoryRepo domain.CategoryRepository, goalRepo domain.GoalRepository) *DashboardService {
	return &DashboardService{
		movementRepo: movementRepo,
		categoryRepo: categoryRepo,
		goalRepo:     goalRepo,
		now:          time.Now,
	}
}

// SetNowFunc overrides the clock, for tests
func (s *DashboardService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// GoalSnapshot is the dashboard's condensed view of the user's goals
type GoalSnapshot struct {
	Active                 int             `json:"active"`
	Completed              int             `json:"completed"`
	Overdue                int             `json:"overdue"`
	CompletionRate         decimal.Decimal `json:"completionRate"`
	FastestProgressingGoal string          `json:"fastestProgressingGoal"`
}

// DashboardSummary contains the main dashboard metrics for one month
type DashboardSummary struct {
	Year               int                           `json:"year"`
	Month              int                           `json:"month"`
	Days               []analytics.Bucket            `json:"days"`
	Totals             analytics.Bucket              `json:"totals"`
	TopCategories      []analytics.CategoryBreakdown `json:"topCategories"`
	MostActiveCategory string                        `json:"mostActiveCategory"`
	DaysRemaining      int                           `json:"daysRemaining"`
	DailyBudget        decimal.Decimal               `json:"dailyBudget"`
	Goals              GoalSnapshot                  `json:"goals"`
}

// topCategoryLimit caps the dashboard category list; the full breakdown
// lives in the category report.
const topCategoryLimit = 5

// GetSummary returns the dashboard summary for the current month
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	now := s.now().UTC()
	return s.GetSummaryForMonth(ctx, userID, now.Year(), int(now.Month()))
}

// GetSummaryForMonth returns the dashboard summary for a specific month
func (s *DashboardService) GetSummaryForMonth(ctx context.Context, userID uuid.UUID, year, month int) (*DashboardSummary, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := util.EndOfMonth(start)
	today := util.StartOfDay(s.now().UTC())

	movements, err := s.movementRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	days := analytics.Buckets(start, end, analytics.GranularityDay, movements)
	totals := analytics.SumBuckets(days)

	expenses := analytics.FilterByKind(movements, domain.MovementKindExpense)
	breakdown := analytics.ByCategory(expenses, names)
	top := breakdown
	if len(top) > topCategoryLimit {
		top = top[:topCategoryLimit]
	}

	daysRemaining := s.calculateDaysRemaining(year, month, today)
	dailyBudget := decimal.Zero
	if daysRemaining > 0 && totals.NetFlow.IsPositive() {
		dailyBudget = totals.NetFlow.Div(decimal.NewFromInt(int64(daysRemaining)))
	}

	snapshot, err := s.goalSnapshot(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Year:               year,
		Month:              month,
		Days:               days,
		Totals:             totals,
		TopCategories:      top,
		MostActiveCategory: analytics.MostActiveCategory(breakdown),
		DaysRemaining:      daysRemaining,
		DailyBudget:        dailyBudget,
		Goals:              *snapshot,
	}, nil
}

// calculateDaysRemaining returns the number of days from today until the end
// of the month, inclusive. Past months yield 0; future months yield the full
// month length.
func (s *DashboardService) calculateDaysRemaining(year, month int, today time.Time) int {
	startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := util.EndOfMonth(startOfMonth)

	if endOfMonth.Before(today) {
		return 0
	}
	if startOfMonth.After(today) {
		return endOfMonth.Day()
	}

	daysRemaining := int(endOfMonth.Sub(today).Hours()/24) + 1
	if daysRemaining < 1 {
		daysRemaining = 1
	}
	return daysRemaining
}

// goalSnapshot condenses all the user's goals into dashboard counters
func (s *DashboardService) goalSnapshot(ctx context.Context, userID uuid.UUID, today time.Time) (*GoalSnapshot, error) {
	goals, err := s.goalRepo.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	progresses, err := analytics.GoalProgressAll(goals, today)
	if err != nil {
		return nil, err
	}

	insights := analytics.ComputeGoalInsights(progresses, nil, 0)

	active := 0
	for _, p := range progresses {
		if p.Status == domain.GoalStatusActive {
			active++
		}
	}

	return &GoalSnapshot{
		Active:                 active,
		Completed:              insights.CompletedGoals,
		Overdue:                insights.OverdueGoals,
		CompletionRate:         insights.CompletionRate,
		FastestProgressingGoal: insights.FastestProgressingGoal,
	}, nil
}
