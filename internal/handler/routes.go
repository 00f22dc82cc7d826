package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/ledgerlight/ledgerlight-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, movementHandler *MovementHandler, categoryHandler *CategoryHandler, goalHandler *GoalHandler, reportHandler *ReportHandler, dashboardHandler *DashboardHandler, websocketHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.PUT("/me", authHandler.UpdateName)
	auth.POST("/logout", authHandler.Logout)

	// Movement routes
	movements := api.Group("/movements")
	movements.POST("", movementHandler.CreateMovement)
	movements.GET("", movementHandler.GetMovements)
	movements.GET("/:id", movementHandler.GetMovement)
	movements.PUT("/:id", movementHandler.UpdateMovement)
	movements.DELETE("/:id", movementHandler.DeleteMovement)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.RenameCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Goal routes
	goals := api.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contributions", goalHandler.AddContribution)
	goals.GET("/:id/contributions", goalHandler.GetContributions)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/annual/:year", reportHandler.GetAnnualReport)
	reports.GET("/monthly/:year/:month", reportHandler.GetMonthlyReport)
	reports.GET("/categories", reportHandler.GetCategoryReport)
	reports.GET("/goals", reportHandler.GetGoalsReport)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// WebSocket endpoint authenticates via query token, outside the JWT group
	e.GET("/ws", websocketHandler.HandleWS)
}
