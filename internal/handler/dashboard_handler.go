package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerlight/ledgerlight-backend/internal/middleware"
	"github.com/ledgerlight/ledgerlight-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles GET /dashboard/summary. Without year and month query
// params it summarizes the current month.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	yearStr := c.QueryParam("year")
	monthStr := c.QueryParam("month")

	if yearStr == "" && monthStr == "" {
		summary, err := h.dashboardService.GetSummary(c.Request().Context(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build dashboard summary")
			return NewInternalError(c, "Failed to build dashboard summary")
		}
		return c.JSON(http.StatusOK, summary)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1970 || year > 9999 {
		return NewValidationError(c, "Invalid year", nil)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return NewValidationError(c, "Invalid month", nil)
	}

	summary, err := h.dashboardService.GetSummaryForMonth(c.Request().Context(), userID, year, month)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build dashboard summary")
		return NewInternalError(c, "Failed to build dashboard summary")
	}

	return c.JSON(http.StatusOK, summary)
}
