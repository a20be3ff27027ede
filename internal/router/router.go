package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/jitterapp/backend/internal/handlers"
	"github.com/jitterapp/backend/internal/middleware"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/notifier"
	"github.com/jitterapp/backend/internal/repositories"
	"github.com/jitterapp/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient and messagingClient may be nil; Firebase login and push
// are then disabled.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, messagingClient *messaging.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Friend{},
		&models.FriendRequest{},
		&models.UserBlock{},
		&models.Jit{},
		&models.JitTarget{},
		&models.JitLike{},
		&models.JitFavorite{},
		&models.JitReply{},
		&models.Activity{},
		&models.StorySeen{},
		&models.DeviceToken{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	blockRepo := repositories.NewPostgresBlockRepository(pgdb)
	jitRepo := repositories.NewPostgresJitRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	deviceRepo := repositories.NewPostgresDeviceRepository(pgdb)
	storyRepo := repositories.NewStoryRepository(mgClient.Database("jitter"), pgdb)

	// --- Notification fanout ---
	emitters := []notifier.Emitter{notifier.NewActivityEmitter(activityRepo)}
	if messagingClient != nil {
		emitters = append(emitters, notifier.NewFCMEmitter(messagingClient, deviceRepo))
	}
	emitter := notifier.NewFanout(emitters...)

	// --- Services ---
	resolver := services.NewVisibilityResolver(blockRepo)
	friendService := services.NewFriendService(friendshipRepo, userRepo, blockRepo, emitter)
	blockService := services.NewBlockService(blockRepo, userRepo)
	jitService := services.NewJitService(jitRepo, userRepo, resolver, emitter)
	storyService := services.NewStoryService(storyRepo, friendshipRepo, userRepo, emitter)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo, deviceRepo, friendService, blockService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	friendshipHandler := handlers.NewFriendshipHandler(friendService)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	jitHandler := handlers.NewJitHandler(jitService)
	jitHandler.RegisterJitRoutes(api)
	log.Println("Jit routes configured.")

	activityHandler := handlers.NewActivityHandler(activityRepo)
	activityHandler.RegisterActivityRoutes(api)
	log.Println("Activity routes configured.")

	storyHandler := handlers.NewStoryHandler(storyService)
	storyHandler.RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	log.Println("All routes configured.")
}
