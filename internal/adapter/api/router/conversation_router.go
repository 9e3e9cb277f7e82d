package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/handler"
	"ishara/internal/adapter/api/middleware"
)

func SetupConversationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	convHandler := handler.GetConversationHandler()

	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("/active", convHandler.ListActive)
	conversations.GET("/previous", convHandler.ListPrevious)
}
