package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/handler"
	"ishara/internal/adapter/api/middleware"
)

func SetupAppointmentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	appointmentHandler := handler.GetAppointmentHandler()

	appointments := e.Group("/v1/appointments")
	appointments.Use(authMiddleware.Authenticate)

	// Requester-scoped: list joined with the directory, create, cascading cancel
	appointments.GET("", appointmentHandler.ListAppointments)
	appointments.POST("", appointmentHandler.CreateAppointment)
	appointments.DELETE("/:translatorId", appointmentHandler.CancelAppointment)
}
