package handler

import (
	"ishara/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	translatorHandler  *TranslatorHandler
	appointmentHandler *AppointmentHandler
	convHandler        *ConversationHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	directoryUseCase *usecase.DirectoryUseCase,
	appointmentUseCase *usecase.AppointmentUseCase,
	conversationUseCase *usecase.ConversationUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	translatorHandler = NewTranslatorHandler(directoryUseCase)
	appointmentHandler = NewAppointmentHandler(appointmentUseCase, userUseCase)
	convHandler = NewConversationHandler(conversationUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetTranslatorHandler() *TranslatorHandler {
	return translatorHandler
}

func GetAppointmentHandler() *AppointmentHandler {
	return appointmentHandler
}

func GetConversationHandler() *ConversationHandler {
	return convHandler
}
