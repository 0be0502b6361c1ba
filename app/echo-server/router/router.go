package router

import (
	"keel/internal/middleware"
	"keel/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.GET("/me", handler.GetProfile, middleware.AuthMiddleware())
}

func SetupCardRoutes(api *echo.Group, handler *rest.UserHandler) {
	cards := api.Group("/cards", middleware.AuthMiddleware())

	cards.GET("", handler.ListCards)
	cards.POST("", handler.AddCard)
	cards.DELETE("/:id", handler.RemoveCard)
	cards.PUT("/rotating", handler.SetRotating)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("", middleware.AuthMiddleware())

	reco.POST("/recommendations", handler.Recommend)
	reco.POST("/score", handler.Score)
}

func SetupMerchantRoutes(api *echo.Group, handler *rest.MerchantHandler) {
	merchants := api.Group("/merchant", middleware.AuthMiddleware())

	merchants.GET("/resolve", handler.Resolve)
}

func SetupVisitRoutes(api *echo.Group, handler *rest.VisitHandler) {
	events := api.Group("/events", middleware.AuthMiddleware())

	events.POST("/visit", handler.Record)
	events.GET("/visit", handler.History)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler) {
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.PUT("/rewards/reload", handler.ReloadRules)
	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.SetConfig)
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/health", handler.Health)
	e.GET("/ready", handler.Ready)
}
