package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"ishara/internal/adapter/api"
	"ishara/internal/adapter/api/handler"
	apimiddleware "ishara/internal/adapter/api/middleware"
	"ishara/internal/adapter/api/router"
	"ishara/internal/adapter/repository"
	"ishara/internal/infrastructure/firebase"
	"ishara/internal/infrastructure/notification"
	"ishara/internal/infrastructure/session"
	"ishara/internal/infrastructure/websocket"
	"ishara/internal/usecase"
	"ishara/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account from environment (production) or file (local).
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	sessionStore, err := session.NewStore(cfg.ValkeyAddr, cfg.ValkeyPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Valkey: %v", err)
	}
	defer sessionStore.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	translatorRepo := repository.NewFirestoreTranslatorRepository(firestoreClient)
	appointmentRepo := repository.NewFirestoreAppointmentRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notifier := notification.NewWebSocketNotifier(wsManager)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, sessionStore)
	userUseCase := usecase.NewUserUseCase(userRepo, translatorRepo, sessionStore)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, cfg.RecentConvLimit)
	directoryUseCase := usecase.NewDirectoryUseCase(translatorRepo, wsManager)
	directoryUseCase.Start(ctx)
	defer directoryUseCase.Close()

	appointmentUseCase := usecase.NewAppointmentUseCase(
		appointmentRepo,
		conversationRepo,
		translatorRepo,
		conversationUseCase,
		directoryUseCase,
		wsManager,
	)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, conversationUseCase, wsManager, notifier)

	handler.Setup(authUseCase, userUseCase, directoryUseCase, appointmentUseCase, conversationUseCase)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	chatHandler := handler.NewChatHandler(chatUseCase, userUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware, appointmentUseCase, chatUseCase)

	router.Setup(e, authMiddleware)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
