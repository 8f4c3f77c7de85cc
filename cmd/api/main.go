package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api"
	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api/handler"
	apimiddleware "github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api/middleware"
	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/api/router"
	"github.com/Aryanbansal-05/Relayy-backend/internal/adapter/repository"
	"github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/firebase"
	"github.com/Aryanbansal-05/Relayy-backend/internal/infrastructure/websocket"
	"github.com/Aryanbansal-05/Relayy-backend/internal/usecase"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/config"
	"github.com/Aryanbansal-05/Relayy-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.Log.Fatal("failed to initialize Firebase", zap.Error(err))
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Log.Fatal("failed to initialize Firebase Auth", zap.Error(err))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Log.Fatal("failed to create Firestore client", zap.Error(err))
	}
	defer firestoreClient.Close()

	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)

	authClient := firebase.NewAuthClient(fbAuth)
	wsManager := websocket.NewManager()

	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, productRepo, wsManager)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authClient, chatUseCase)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	logger.Log.Info("starting server", zap.String("port", cfg.ServerPort))
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
