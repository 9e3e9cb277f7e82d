package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/middleware"
	ws "ishara/internal/infrastructure/websocket"
	"ishara/internal/usecase"
	"ishara/pkg/errors"
)

type WebSocketHandler struct {
	wsManager          *ws.Manager
	authMiddleware     *middleware.AuthMiddleware
	appointmentUseCase *usecase.AppointmentUseCase
	chatUseCase        *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	appointmentUseCase *usecase.AppointmentUseCase,
	chatUseCase *usecase.ChatUseCase,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:          wsManager,
		authMiddleware:     authMiddleware,
		appointmentUseCase: appointmentUseCase,
		chatUseCase:        chatUseCase,
	}
}

// HandleWebSocket upgrades the connection and ties the user's live
// subscriptions to its lifetime: appointment watching starts on connect and
// every subscription is torn down when the socket closes.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication token required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client
	h.appointmentUseCase.Watch(userID)

	go func() {
		client.ReadPump(h.wsManager)
		h.appointmentUseCase.Unwatch(userID)
		h.chatUseCase.CloseAllForUser(userID)
	}()
	go client.WritePump()

	return nil
}
