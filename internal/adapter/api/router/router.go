package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupTranslatorRouter(e, authMiddleware)
	SetupAppointmentRouter(e, authMiddleware)
	SetupConversationRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
