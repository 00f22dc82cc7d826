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

// MovementHandler handles movement-related HTTP requests
type MovementHandler struct {
	movementService *service.MovementService
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movementService *service.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// CreateMovementRequest represents the create movement request body
type CreateMovementRequest struct {
	Kind        string  `json:"kind"`
	Amount      string  `json:"amount"`
	CategoryID  *string `json:"categoryId,omitempty"`
	OccurredOn  *string `json:"occurredOn,omitempty"`
	Description string  `json:"description,omitempty"`
}

// MovementResponse represents a movement in API responses
type MovementResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Amount      string  `json:"amount"`
	CategoryID  *string `json:"categoryId,omitempty"`
	OccurredOn  string  `json:"occurredOn"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toMovementResponse(m *domain.Movement) MovementResponse {
	resp := MovementResponse{
		ID:          m.ID.String(),
		Kind:        string(m.Kind),
		Amount:      m.Amount.String(),
		OccurredOn:  m.OccurredOn.Format("2006-01-02"),
		Description: m.Description,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
	}
	if m.CategoryID != nil {
		id := m.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// CreateMovement handles POST /movements
func (h *MovementHandler) CreateMovement(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateMovementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return NewValidationError(c, "Invalid categoryId", []ValidationError{
			{Field: "categoryId", Message: "Must be a valid UUID"},
		})
	}

	occurredOn, err := parseOptionalDate(req.OccurredOn)
	if err != nil {
		return NewValidationError(c, "Invalid occurredOn", []ValidationError{
			{Field: "occurredOn", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	movement, err := h.movementService.CreateMovement(c.Request().Context(), userID, service.CreateMovementInput{
		Kind:        domain.MovementKind(req.Kind),
		Amount:      amount,
		CategoryID:  categoryID,
		OccurredOn:  occurredOn,
		Description: req.Description,
	})
	if err != nil {
		if handled := movementValidationError(c, err); handled != nil {
			return handled
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create movement")
		return NewInternalError(c, "Failed to create movement")
	}

	log.Info().Str("user_id", userID.String()).Str("movement_id", movement.ID.String()).Msg("Movement created")

	return c.JSON(http.StatusCreated, toMovementResponse(movement))
}

// PaginatedMovementsResponse represents paginated movements in API responses
type PaginatedMovementsResponse struct {
	Data       []MovementResponse `json:"data"`
	Page       int32              `json:"page"`
	PageSize   int32              `json:"pageSize"`
	TotalItems int64              `json:"totalItems"`
	TotalPages int32              `json:"totalPages"`
}

// GetMovements handles GET /movements
func (h *MovementHandler) GetMovements(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters := &domain.MovementFilters{
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if kindStr := c.QueryParam("kind"); kindStr != "" {
		kind := domain.MovementKind(kindStr)
		if !kind.IsValid() {
			return NewValidationError(c, "Invalid kind", []ValidationError{
				{Field: "kind", Message: "Must be one of: income, expense, savings, investment"},
			})
		}
		filters.Kind = &kind
	}

	if categoryIDStr := c.QueryParam("categoryId"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			return NewValidationError(c, "Invalid categoryId", nil)
		}
		filters.CategoryID = &categoryID
	}

	if startStr := c.QueryParam("startDate"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return NewValidationError(c, "Invalid startDate", nil)
		}
		filters.StartDate = &start
	}

	if endStr := c.QueryParam("endDate"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return NewValidationError(c, "Invalid endDate", nil)
		}
		filters.EndDate = &end
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.ParseInt(pageStr, 10, 32)
		if err != nil || page < 1 {
			return NewValidationError(c, "Invalid page", nil)
		}
		filters.Page = int32(page)
	}

	if pageSizeStr := c.QueryParam("pageSize"); pageSizeStr != "" {
		pageSize, err := strconv.ParseInt(pageSizeStr, 10, 32)
		if err != nil || pageSize < 1 || pageSize > domain.MaxPageSize {
			return NewValidationError(c, "Invalid pageSize", nil)
		}
		filters.PageSize = int32(pageSize)
	}

	page, err := h.movementService.GetMovements(c.Request().Context(), userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list movements")
		return NewInternalError(c, "Failed to list movements")
	}

	data := make([]MovementResponse, 0, len(page.Data))
	for _, m := range page.Data {
		data = append(data, toMovementResponse(m))
	}

	return c.JSON(http.StatusOK, PaginatedMovementsResponse{
		Data:       data,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// GetMovement handles GET /movements/:id
func (h *MovementHandler) GetMovement(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid movement ID", nil)
	}

	movement, err := h.movementService.GetMovementByID(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrMovementNotFound) {
			return NewNotFoundError(c, "Movement not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get movement")
		return NewInternalError(c, "Failed to get movement")
	}

	return c.JSON(http.StatusOK, toMovementResponse(movement))
}

// UpdateMovementRequest represents the update movement request body
type UpdateMovementRequest struct {
	Kind          *string `json:"kind,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	CategoryID    *string `json:"categoryId,omitempty"`
	ClearCategory bool    `json:"clearCategory,omitempty"`
	OccurredOn    *string `json:"occurredOn,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// UpdateMovement handles PUT /movements/:id
func (h *MovementHandler) UpdateMovement(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid movement ID", nil)
	}

	var req UpdateMovementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateMovementInput{
		ClearCategory: req.ClearCategory,
		Description:   req.Description,
	}

	if req.Kind != nil {
		kind := domain.MovementKind(*req.Kind)
		input.Kind = &kind
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return NewValidationError(c, "Invalid categoryId", nil)
		}
		input.CategoryID = &categoryID
	}

	if req.OccurredOn != nil {
		occurredOn, err := time.Parse("2006-01-02", *req.OccurredOn)
		if err != nil {
			return NewValidationError(c, "Invalid occurredOn", nil)
		}
		input.OccurredOn = &occurredOn
	}

	movement, err := h.movementService.UpdateMovement(c.Request().Context(), userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrMovementNotFound) {
			return NewNotFoundError(c, "Movement not found")
		}
		if handled := movementValidationError(c, err); handled != nil {
			return handled
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update movement")
		return NewInternalError(c, "Failed to update movement")
	}

	return c.JSON(http.StatusOK, toMovementResponse(movement))
}

// DeleteMovement handles DELETE /movements/:id
func (h *MovementHandler) DeleteMovement(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid movement ID", nil)
	}

	if err := h.movementService.DeleteMovement(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrMovementNotFound) {
			return NewNotFoundError(c, "Movement not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete movement")
		return NewInternalError(c, "Failed to delete movement")
	}

	return c.NoContent(http.StatusNoContent)
}

// movementValidationError maps movement domain errors to validation
// responses. Returns nil for errors it does not recognize.
func movementValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMovementKind):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "kind", Message: "Must be one of: income, expense, savings, investment"},
		})
	case errors.Is(err, domain.ErrNegativeAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be negative"},
		})
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "occurredOn", Message: "Date is required"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 1000 characters or less"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		})
	case errors.Is(err, domain.ErrCategoryKindMismatch):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category kind must match the movement kind"},
		})
	}
	return nil
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
