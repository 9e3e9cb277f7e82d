package handler

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/usecase"
	"ishara/pkg/errors"
	"ishara/pkg/response"
	"ishara/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
	userUseCase *usecase.UserUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, userUseCase *usecase.UserUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		userUseCase: userUseCase,
	}
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) OpenSession(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return response.Error(c, errors.BadRequest("Room id is required", nil))
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	session, err := h.chatUseCase.OpenSession(uid, user.Name, roomID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"room_id":  session.RoomID,
		"state":    session.State().String(),
		"messages": session.Messages(),
		"error":    session.ErrMsg(),
	})
}

func (h *ChatHandler) CloseSession(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return response.Error(c, errors.BadRequest("Room id is required", nil))
	}

	uid := c.Get("uid").(string)
	h.chatUseCase.CloseSession(uid, roomID)

	return response.Success(c, map[string]string{
		"message": "Session closed",
	})
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return response.Error(c, errors.BadRequest("Room id is required", nil))
	}

	params := utils.GetPaginationParams(c, 50)

	messages, total, err := h.chatUseCase.History(c.Request().Context(), roomID, params.Limit, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, params.Limit, params.Offset)
}

// SendMessage writes a message to the room. Blank text is accepted and
// dropped; a storage failure comes back as an error response, never silently.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	roomID := c.Param("roomId")
	if roomID == "" {
		return response.Error(c, errors.BadRequest("Room id is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, user.Name, roomID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	if message == nil {
		return response.Success(c, map[string]string{
			"message": "Nothing to send",
		})
	}

	return response.Created(c, message)
}
