package handler

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/usecase"
	"ishara/pkg/response"
)

type TranslatorHandler struct {
	directoryUseCase *usecase.DirectoryUseCase
}

func NewTranslatorHandler(directoryUseCase *usecase.DirectoryUseCase) *TranslatorHandler {
	return &TranslatorHandler{
		directoryUseCase: directoryUseCase,
	}
}

// ListTranslators serves a one-shot directory read; the live feed arrives
// over the WebSocket subscription.
func (h *TranslatorHandler) ListTranslators(c echo.Context) error {
	translators, err := h.directoryUseCase.List(c.Request().Context(), c.QueryParam("level"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, translators)
}

// SetLevelFilter re-scopes the live directory subscription to a proficiency
// level. An empty level clears the filter.
func (h *TranslatorHandler) SetLevelFilter(c echo.Context) error {
	var req struct {
		Level string `json:"level"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.directoryUseCase.SetLevelFilter(req.Level); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"level": req.Level,
	})
}

// CurrentDirectory returns the last snapshot the live subscription delivered,
// along with the user-facing error when the feed is broken.
func (h *TranslatorHandler) CurrentDirectory(c echo.Context) error {
	translators, errMsg := h.directoryUseCase.Current()

	return response.Success(c, map[string]interface{}{
		"translators": translators,
		"level":       string(h.directoryUseCase.Level()),
		"error":       errMsg,
	})
}
