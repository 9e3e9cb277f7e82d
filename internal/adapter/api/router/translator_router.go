package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/handler"
	"ishara/internal/adapter/api/middleware"
)

func SetupTranslatorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	translatorHandler := handler.GetTranslatorHandler()

	translators := e.Group("/v1/translators")
	translators.Use(authMiddleware.Authenticate)

	// One-shot read (?level=), latest live snapshot, and feed re-scoping
	translators.GET("", translatorHandler.ListTranslators)
	translators.GET("/live", translatorHandler.CurrentDirectory)
	translators.PUT("/filter", translatorHandler.SetLevelFilter)
}
