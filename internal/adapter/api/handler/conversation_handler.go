package handler

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/usecase"
	"ishara/pkg/response"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

func (h *ConversationHandler) ListActive(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.Active(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// ListPrevious returns the user's conversation history. The optional name
// query parameter feeds the fallback lookup for records stored before user
// ids were written on summaries.
func (h *ConversationHandler) ListPrevious(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.Previous(c.Request().Context(), uid, c.QueryParam("name"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}
