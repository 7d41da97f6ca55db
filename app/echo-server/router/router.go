package router

import (
	"smelterAdvisor/app/echo-server/metrics"
	"smelterAdvisor/business/operator"
	"smelterAdvisor/internal/middleware"
	"smelterAdvisor/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAdvisorRoutes(api *echo.Group, handler *rest.AdvisorHandler) {
	api.POST("/predict", handler.Predict)
	api.POST("/recommend", handler.Recommend)
	api.GET("/state", handler.State)
	api.GET("/recommendations/history", handler.History)
}

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")
	auth.POST("/login", handler.Login)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdvisorAdminHandler, parser middleware.TokenParser) {
	admin := api.Group("/admin", middleware.AuthMiddleware(parser), middleware.RoleRequired(operator.RoleOperator))

	admin.GET("/parameters", handler.ListParameters)
	admin.PUT("/parameters", handler.UpsertParameter)
}

func SetupFeedRoutes(e *echo.Echo, handler *rest.FeedHandler) {
	e.GET("/ws/feed", handler.Stream)
}

func SetupSystemRoutes(e *echo.Echo, health *rest.HealthHandler) {
	e.GET("/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
