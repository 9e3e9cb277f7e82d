package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/handler"
	"ishara/internal/adapter/api/middleware"
)

// SetupChatRouter sets up chat session and message routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	// Session lifecycle
	chats.POST("/:roomId/open", chatHandler.OpenSession)
	chats.POST("/:roomId/close", chatHandler.CloseSession)

	// Messages
	chats.GET("/:roomId/messages", chatHandler.GetMessages)
	chats.POST("/:roomId/messages", chatHandler.SendMessage)
}
