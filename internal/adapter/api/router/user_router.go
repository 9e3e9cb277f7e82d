package router

import (
	"github.com/labstack/echo/v4"

	"ishara/internal/adapter/api/handler"
	"ishara/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.POST("/role", userHandler.ChooseRole)
	users.GET("/role", userHandler.GetRole)
	users.POST("/profile", userHandler.SaveProfile)
	users.GET("/profile", userHandler.GetProfile)
	users.DELETE("/profile", userHandler.DeleteProfile)
}
