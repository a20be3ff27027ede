package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/jitterapp/backend/internal/router"
	"github.com/jitterapp/backend/pkg/config"
	"github.com/jitterapp/backend/pkg/firebase"
	"github.com/jitterapp/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Firebase is optional; without credentials the app runs with local JWT
	// auth only and no push delivery.
	var authClient *auth.Client
	var messagingClient *messaging.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
		messagingClient = firebaseApp.MessagingClient
	} else {
		log.Println("Firebase credentials not configured; push notifications disabled.")
	}

	e := echo.New()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, db.Postgres, db.Mongo, authClient, messagingClient)

	e.Validator = validators.NewValidator()

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
