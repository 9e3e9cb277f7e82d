package handler

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/domain/entity"
	"ishara/internal/usecase"
	"ishara/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type chooseRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=deaf translator"`
}

type saveProfileRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Gender     string  `json:"gender" validate:"required"`
	Age        int     `json:"age" validate:"required,gte=17,lte=100"`
	Level      string  `json:"level" validate:"required"`
	Plan       string  `json:"plan" validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
}

func (h *UserHandler) ChooseRole(c echo.Context) error {
	var req chooseRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	if err := h.userUseCase.ChooseRole(c.Request().Context(), uid, entity.Role(req.Role)); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"role": req.Role,
	})
}

func (h *UserHandler) GetRole(c echo.Context) error {
	uid := c.Get("uid").(string)

	role, err := h.userUseCase.Role(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"role": string(role),
	})
}

func (h *UserHandler) SaveProfile(c echo.Context) error {
	var req saveProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	profile, err := h.userUseCase.SaveProfile(c.Request().Context(), uid, usecase.SaveProfileInput{
		Name:       req.Name,
		Gender:     req.Gender,
		Age:        req.Age,
		Level:      req.Level,
		Plan:       req.Plan,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	profile, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) DeleteProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.DeleteProfile(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Profile deleted",
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}
