package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newDashboardService() (*DashboardService, *testutil.MockMovementRepository, *testutil.MockCategoryRepository, *testutil.MockGoalRepository) {
	movementRepo := testutil.NewMockMovementRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	goalRepo := testutil.NewMockGoalRepository()
	return NewDashboardService(movementRepo, categoryRepo, goalRepo), movementRepo, categoryRepo, goalRepo
}

func TestGetSummary_CurrentMonth(t *testing.T) {
	dashboardService, movementRepo, _, _ := newDashboardService()

	fixed := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	dashboardService.SetNowFunc(func() time.Time { return fixed })

	userID := uuid.New()
	movementRepo.AddMovement(&domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindIncome,
		Amount:     decimal.NewFromInt(2400),
		OccurredOn: date(2025, time.January, 1),
	})
	movementRepo.AddMovement(&domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(1200),
		OccurredOn: date(2025, time.January, 10),
	})

	summary, err := dashboardService.GetSummary(context.Background(), userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Year != 2025 || summary.Month != 1 {
		t.Errorf("Expected 2025-01, got %d-%02d", summary.Year, summary.Month)
	}
	if len(summary.Days) != 31 {
		t.Errorf("Expected 31 daily buckets, got %d", len(summary.Days))
	}
	if !summary.Totals.NetFlow.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected net flow 1200, got %s", summary.Totals.NetFlow.String())
	}

	// Jan 20 through Jan 31 inclusive is 12 days
	if summary.DaysRemaining != 12 {
		t.Errorf("Expected 12 days remaining, got %d", summary.DaysRemaining)
	}
	if summary.DailyBudget.StringFixed(2) != "100.00" {
		t.Errorf("Expected daily budget 100.00, got %s", summary.DailyBudget.StringFixed(2))
	}
}

func TestGetSummaryForMonth_PastMonth(t *testing.T) {
	dashboardService, _, _, _ := newDashboardService()

	fixed := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	dashboardService.SetNowFunc(func() time.Time { return fixed })

	summary, err := dashboardService.GetSummaryForMonth(context.Background(), uuid.New(), 2025, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.DaysRemaining != 0 {
		t.Errorf("Expected 0 days remaining for a past month, got %d", summary.DaysRemaining)
	}
	if !summary.DailyBudget.IsZero() {
		t.Errorf("Expected zero daily budget for a past month, got %s", summary.DailyBudget.String())
	}
}

func TestGetSummaryForMonth_FutureMonth(t *testing.T) {
	dashboardService, _, _, _ := newDashboardService()

	fixed := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	dashboardService.SetNowFunc(func() time.Time { return fixed })

	summary, err := dashboardService.GetSummaryForMonth(context.Background(), uuid.New(), 2025, 9)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.DaysRemaining != 30 {
		t.Errorf("Expected full 30 days remaining for September, got %d", summary.DaysRemaining)
	}
}

func TestGetSummaryForMonth_NegativeNetFlowZeroBudget(t *testing.T) {
	dashboardService, movementRepo, _, _ := newDashboardService()

	fixed := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	dashboardService.SetNowFunc(func() time.Time { return fixed })

	userID := uuid.New()
	movementRepo.AddMovement(&domain.Movement{
		UserID:     userID,
		Kind:       domain.MovementKindExpense,
		Amount:     decimal.NewFromInt(500),
		OccurredOn: date(2025, time.January, 5),
	})

	summary, err := dashboardService.GetSummaryForMonth(context.Background(), userID, 2025, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.DailyBudget.IsZero() {
		t.Errorf("Expected zero daily budget when net flow is negative, got %s", summary.DailyBudget.String())
	}
}

func TestGetSummaryForMonth_TopCategoriesCapped(t *testing.T) {
	dashboardService, movementRepo, categoryRepo, _ := newDashboardService()

	fixed := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	dashboardService.SetNowFunc(func() time.Time { return fixed })

	userID := uuid.New()
	names := []string{"Food", "Rent", "Transport", "Health", "Fun", "Books", "Travel"}
	for i, name := range names {
		category := &domain.Category{UserID: userID, Name: name, Kind: domain.MovementKindExpense}
		categoryRepo.AddCategory(category)
		movementRepo.AddMovement(&domain.Movement{
			UserID:     userID,
			Kind:       domain.MovementKindExpense,
			Amount:     decimal.NewFromInt(int64(10 * (i + 1))),
			CategoryID: &category.ID,
			OccurredOn: date(2025, time.January, i+1),
		})
	}

	summary, err := dashboardService.GetSummaryForMonth(context.Background(), userID, 2025, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.TopCategories) != 5 {
		t.Errorf("Expected top categories capped at 5, got %d", len(summary.TopCategories))
	}
}

func TestGetSummaryForMonth_GoalSnapshot(t *testing.T) {
	dashboardService, _, _, goalRepo := newDashboardService()

	fixed := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	dashboardService.SetNowFunc(func() time.Time { return fixed })

	userID := uuid.New()
	past := date(2025, time.May, 1)
	completedAt := date(2025, time.April, 1)

	goalRepo.AddGoal(&domain.Goal{
		UserID:        userID,
		Title:         "Overdue",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(100),
		TargetDate:    &past,
		Status:        domain.GoalStatusActive,
		CreatedAt:     date(2025, time.January, 1),
	})
	goalRepo.AddGoal(&domain.Goal{
		UserID:        userID,
		Title:         "Done",
		TargetAmount:  decimal.NewFromInt(500),
		CurrentAmount: decimal.NewFromInt(500),
		Status:        domain.GoalStatusCompleted,
		CompletedAt:   &completedAt,
		CreatedAt:     date(2025, time.February, 1),
	})
	goalRepo.AddGoal(&domain.Goal{
		UserID:       userID,
		Title:        "Paused",
		TargetAmount: decimal.NewFromInt(2000),
		Status:       domain.GoalStatusPaused,
		CreatedAt:    date(2025, time.March, 1),
	})

	summary, err := dashboardService.GetSummaryForMonth(context.Background(), userID, 2025, 6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Goals.Active != 1 {
		t.Errorf("Expected 1 active goal, got %d", summary.Goals.Active)
	}
	if summary.Goals.Completed != 1 {
		t.Errorf("Expected 1 completed goal, got %d", summary.Goals.Completed)
	}
	if summary.Goals.Overdue != 1 {
		t.Errorf("Expected 1 overdue goal, got %d", summary.Goals.Overdue)
	}
	if summary.Goals.CompletionRate.StringFixed(2) != "33.33" {
		t.Errorf("Expected 33.33%% completion rate, got %s", summary.Goals.CompletionRate.StringFixed(2))
	}
}
