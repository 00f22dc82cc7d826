package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/middleware"
	"github.com/ledgerlight/ledgerlight-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings-goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Title        string  `json:"title"`
	Category     *string `json:"category,omitempty"`
	TargetAmount string  `json:"targetAmount"`
	TargetDate   *string `json:"targetDate,omitempty"`
}

// UpdateGoalRequest represents the update goal request body
type UpdateGoalRequest struct {
	Title           *string `json:"title,omitempty"`
	Category        *string `json:"category,omitempty"`
	TargetAmount    *string `json:"targetAmount,omitempty"`
	TargetDate      *string `json:"targetDate,omitempty"`
	ClearTargetDate bool    `json:"clearTargetDate,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Category      *string `json:"category,omitempty"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount"`
	TargetDate    *string `json:"targetDate,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	CompletedAt   *string `json:"completedAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toGoalResponse(goal *domain.Goal) GoalResponse {
	resp := GoalResponse{
		ID:            goal.ID.String(),
		Title:         goal.Title,
		Category:      goal.Category,
		TargetAmount:  goal.TargetAmount.String(),
		CurrentAmount: goal.CurrentAmount.String(),
		Status:        string(goal.Status),
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     goal.UpdatedAt.Format(time.RFC3339),
	}
	if goal.TargetDate != nil {
		d := goal.TargetDate.Format("2006-01-02")
		resp.TargetDate = &d
	}
	if goal.CompletedAt != nil {
		t := goal.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &t
	}
	return resp
}

// CreateGoal handles POST /goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	targetAmount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return NewValidationError(c, "Invalid targetAmount", []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		})
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return NewValidationError(c, "Invalid targetDate", []ValidationError{
			{Field: "targetDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), userID, service.CreateGoalInput{
		Title:        req.Title,
		Category:     req.Category,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
	})
	if err != nil {
		if handled := goalValidationError(c, err); handled != nil {
			return handled
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Str("title", goal.Title).Msg("Goal created")

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals handles GET /goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseGoalFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	goals, err := h.goalService.GetGoals(c.Request().Context(), userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list goals")
		return NewInternalError(c, "Failed to list goals")
	}

	responses := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		responses = append(responses, toGoalResponse(goal))
	}

	return c.JSON(http.StatusOK, responses)
}

// GetGoal handles GET /goals/:id
func (h *GoalHandler) GetGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.GetGoalByID(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get goal")
		return NewInternalError(c, "Failed to get goal")
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal handles PUT /goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateGoalInput{
		Title:           req.Title,
		Category:        req.Category,
		ClearTargetDate: req.ClearTargetDate,
	}

	if req.TargetAmount != nil {
		targetAmount, err := decimal.NewFromString(*req.TargetAmount)
		if err != nil {
			return NewValidationError(c, "Invalid targetAmount", []ValidationError{
				{Field: "targetAmount", Message: "Must be a valid decimal number"},
			})
		}
		input.TargetAmount = &targetAmount
	}

	if req.TargetDate != nil {
		targetDate, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			return NewValidationError(c, "Invalid targetDate", nil)
		}
		input.TargetDate = &targetDate
	}

	if req.Status != nil {
		status := domain.GoalStatus(*req.Status)
		input.Status = &status
	}

	goal, err := h.goalService.UpdateGoal(c.Request().Context(), userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if handled := goalValidationError(c, err); handled != nil {
			return handled
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.DeleteGoal(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	return c.NoContent(http.StatusNoContent)
}

// AddContributionRequest represents the add contribution request body
type AddContributionRequest struct {
	Amount     string  `json:"amount"`
	MovementID *string `json:"movementId,omitempty"`
}

// ContributionResponse represents a contribution in API responses
type ContributionResponse struct {
	ID         string  `json:"id"`
	GoalID     string  `json:"goalId"`
	MovementID *string `json:"movementId,omitempty"`
	Amount     string  `json:"amount"`
	CreatedAt  string  `json:"createdAt"`
}

func toContributionResponse(contribution *domain.GoalContribution) ContributionResponse {
	resp := ContributionResponse{
		ID:        contribution.ID.String(),
		GoalID:    contribution.GoalID.String(),
		Amount:    contribution.Amount.String(),
		CreatedAt: contribution.CreatedAt.Format(time.RFC3339),
	}
	if contribution.MovementID != nil {
		id := contribution.MovementID.String()
		resp.MovementID = &id
	}
	return resp
}

// AddContribution handles POST /goals/:id/contributions
func (h *GoalHandler) AddContribution(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req AddContributionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	movementID, err := parseOptionalUUID(req.MovementID)
	if err != nil {
		return NewValidationError(c, "Invalid movementId", nil)
	}

	contribution, err := h.goalService.AddContribution(c.Request().Context(), userID, goalID, service.AddContributionInput{
		Amount:     amount,
		MovementID: movementID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrMovementNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "movementId", Message: "Movement not found"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to add contribution")
		return NewInternalError(c, "Failed to add contribution")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goalID.String()).Str("amount", amount.String()).Msg("Contribution added")

	return c.JSON(http.StatusCreated, toContributionResponse(contribution))
}

// GetContributions handles GET /goals/:id/contributions
func (h *GoalHandler) GetContributions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	contributions, err := h.goalService.GetContributions(c.Request().Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list contributions")
		return NewInternalError(c, "Failed to list contributions")
	}

	responses := make([]ContributionResponse, 0, len(contributions))
	for _, contribution := range contributions {
		responses = append(responses, toContributionResponse(contribution))
	}

	return c.JSON(http.StatusOK, responses)
}

func goalValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "title", Message: "Title is required"},
		})
	case errors.Is(err, domain.ErrTitleTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "title", Message: "Title must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidTargetAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Target amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidGoalStatus):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "status", Message: "Must be one of: active, paused, completed"},
		})
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currentAmount", Message: "Amount must not be negative"},
		})
	}
	return nil
}

// parseGoalFilters reads the optional status, category and year query params
func parseGoalFilters(c echo.Context) (*domain.GoalFilters, error) {
	filters := &domain.GoalFilters{}
	hasAny := false

	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := domain.GoalStatus(statusStr)
		if !status.IsValid() {
			return nil, errors.New("Invalid status")
		}
		filters.Status = &status
		hasAny = true
	}

	if category := c.QueryParam("category"); category != "" {
		filters.Category = &category
		hasAny = true
	}

	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, errors.New("Invalid year")
		}
		filters.Year = &year
		hasAny = true
	}

	if !hasAny {
		return nil, nil
	}
	return filters, nil
}
