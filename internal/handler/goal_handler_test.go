package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/service"
	"github.com/ledgerlight/ledgerlight-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newGoalHandler() (*GoalHandler, *testutil.MockGoalRepository) {
	goalRepo := testutil.NewMockGoalRepository()
	contributionRepo := testutil.NewMockGoalContributionRepository()
	movementRepo := testutil.NewMockMovementRepository()
	goalService := service.NewGoalService(goalRepo, contributionRepo, movementRepo)
	return NewGoalHandler(goalService), goalRepo
}

func TestCreateGoalHandler_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()
	userID := uuid.New()

	body := `{"title":"Emergency fund","targetAmount":"5000","targetDate":"2026-12-31"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", userID)

	if err := handler.CreateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Title != "Emergency fund" {
		t.Errorf("Expected title 'Emergency fund', got %s", response.Title)
	}
	if response.Status != "active" {
		t.Errorf("Expected status 'active', got %s", response.Status)
	}
	if response.CurrentAmount != "0" {
		t.Errorf("Expected current amount '0', got %s", response.CurrentAmount)
	}
	if response.TargetDate == nil || *response.TargetDate != "2026-12-31" {
		t.Errorf("Expected target date '2026-12-31', got %v", response.TargetDate)
	}
}

func TestCreateGoalHandler_ZeroTarget(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()

	body := `{"title":"Nothing","targetAmount":"0"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", uuid.New())

	if err := handler.CreateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAddContributionHandler_Success(t *testing.T) {
	e := echo.New()
	handler, goalRepo := newGoalHandler()
	userID := uuid.New()

	goal := &domain.Goal{
		UserID:        userID,
		Title:         "Vacation",
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(300),
		Status:        domain.GoalStatusActive,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	goalRepo.AddGoal(goal)

	body := `{"amount":"150"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/"+goal.ID.String()+"/contributions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(goal.ID.String())
	setupAuthContext(c, "auth0|test", userID)

	if err := handler.AddContribution(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response ContributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "150" {
		t.Errorf("Expected amount '150', got %s", response.Amount)
	}
	if !goal.CurrentAmount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Expected current amount 450, got %s", goal.CurrentAmount)
	}
}

func TestAddContributionHandler_GoalNotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()

	goalID := uuid.NewString()
	body := `{"amount":"150"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/"+goalID+"/contributions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(goalID)
	setupAuthContext(c, "auth0|test", uuid.New())

	if err := handler.AddContribution(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetGoalsHandler_OtherUserGoalsHidden(t *testing.T) {
	e := echo.New()
	handler, goalRepo := newGoalHandler()
	userID := uuid.New()

	goalRepo.AddGoal(&domain.Goal{
		UserID:       userID,
		Title:        "Mine",
		TargetAmount: decimal.NewFromInt(100),
		Status:       domain.GoalStatusActive,
	})
	goalRepo.AddGoal(&domain.Goal{
		UserID:       uuid.New(),
		Title:        "Theirs",
		TargetAmount: decimal.NewFromInt(100),
		Status:       domain.GoalStatusActive,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", userID)

	if err := handler.GetGoals(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 goal, got %d", len(response))
	}
	if response[0].Title != "Mine" {
		t.Errorf("Expected goal 'Mine', got %s", response[0].Title)
	}
}
