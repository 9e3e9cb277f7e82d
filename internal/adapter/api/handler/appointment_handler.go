package handler

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/usecase"
	"ishara/pkg/errors"
	"ishara/pkg/response"
)

type AppointmentHandler struct {
	appointmentUseCase *usecase.AppointmentUseCase
	userUseCase        *usecase.UserUseCase
}

func NewAppointmentHandler(appointmentUseCase *usecase.AppointmentUseCase, userUseCase *usecase.UserUseCase) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUseCase: appointmentUseCase,
		userUseCase:        userUseCase,
	}
}

type createAppointmentRequest struct {
	TranslatorID string `json:"translator_id" validate:"required"`
}

func (h *AppointmentHandler) ListAppointments(c echo.Context) error {
	uid := c.Get("uid").(string)

	matched, err := h.appointmentUseCase.List(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, matched)
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	matched, err := h.appointmentUseCase.Create(c.Request().Context(), uid, user.Name, req.TranslatorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, matched)
}

func (h *AppointmentHandler) CancelAppointment(c echo.Context) error {
	translatorID := c.Param("translatorId")
	if translatorID == "" {
		return response.Error(c, errors.BadRequest("Translator id is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.appointmentUseCase.Cancel(c.Request().Context(), uid, translatorID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Appointment cancelled",
	})
}
