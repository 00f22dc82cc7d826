package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerlight/ledgerlight-backend/internal/analytics"
	"github.com/ledgerlight/ledgerlight-backend/internal/domain"
	"github.com/ledgerlight/ledgerlight-backend/internal/middleware"
	"github.com/ledgerlight/ledgerlight-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetAnnualReport handles GET /reports/annual/:year
func (h *ReportHandler) GetAnnualReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		return NewValidationError(c, "Invalid year", nil)
	}

	report, err := h.reportService.GetAnnualReport(c.Request().Context(), userID, year)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Int("year", year).Msg("Failed to build annual report")
		return NewInternalError(c, "Failed to build annual report")
	}

	return c.JSON(http.StatusOK, report)
}

// GetMonthlyReport handles GET /reports/monthly/:year/:month
func (h *ReportHandler) GetMonthlyReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		return NewValidationError(c, "Invalid year", nil)
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return NewValidationError(c, "Invalid month", nil)
	}

	report, err := h.reportService.GetMonthlyReport(c.Request().Context(), userID, year, month)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Int("year", year).Int("month", month).Msg("Failed to build monthly report")
		return NewInternalError(c, "Failed to build monthly report")
	}

	return c.JSON(http.StatusOK, report)
}

// GetCategoryReport handles GET /reports/categories
func (h *ReportHandler) GetCategoryReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	startStr := c.QueryParam("startDate")
	endStr := c.QueryParam("endDate")
	if startStr == "" || endStr == "" {
		return NewValidationError(c, "startDate and endDate are required", nil)
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return NewValidationError(c, "Invalid startDate", nil)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return NewValidationError(c, "Invalid endDate", nil)
	}

	kind := domain.MovementKindExpense
	if kindStr := c.QueryParam("kind"); kindStr != "" {
		kind = domain.MovementKind(kindStr)
	}

	granularity := analytics.GranularityMonth
	if granularityStr := c.QueryParam("granularity"); granularityStr != "" {
		parsed, ok := analytics.ParseGranularity(granularityStr)
		if !ok {
			return NewValidationError(c, "Invalid granularity", []ValidationError{
				{Field: "granularity", Message: "Must be one of: day, week, month, year"},
			})
		}
		granularity = parsed
	}

	report, err := h.reportService.GetCategoryReport(c.Request().Context(), userID, start, end, kind, granularity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "endDate must not be before startDate", nil)
		}
		if errors.Is(err, domain.ErrInvalidMovementKind) {
			return NewValidationError(c, "Invalid kind", []ValidationError{
				{Field: "kind", Message: "Must be one of: income, expense, savings, investment"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build category report")
		return NewInternalError(c, "Failed to build category report")
	}

	return c.JSON(http.StatusOK, report)
}

// GetGoalsReport handles GET /reports/goals
func (h *ReportHandler) GetGoalsReport(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseGoalFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	report, err := h.reportService.GetGoalsReport(c.Request().Context(), userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build goals report")
		return NewInternalError(c, "Failed to build goals report")
	}

	return c.JSON(http.StatusOK, report)
}
