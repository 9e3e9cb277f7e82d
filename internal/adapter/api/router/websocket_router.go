package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up WebSocket routes
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	// Auth happens inside the handler; the token arrives as a query parameter.
	e.GET("/ws", wsHandler.HandleWebSocket)
}
