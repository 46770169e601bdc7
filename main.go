package main

import (
	"net/http"
	"os"

	"github.com/Ekhol/warbler/database"
	"github.com/Ekhol/warbler/handlers"
	"github.com/Ekhol/warbler/logger"
	"github.com/Ekhol/warbler/models"
	"github.com/Ekhol/warbler/repositories"
	"github.com/Ekhol/warbler/routes"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables.")
	}

	logger.InitLogger()

	db, err := database.Connect()
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to database")
	}
	if err := models.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Could not run migrations")
	}

	secret := os.Getenv("SESSION_KEY")
	if secret == "" {
		secret = "development-key"
	}
	store := handlers.NewSessionStore(secret)

	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, store)
	userHandler := handlers.NewUserHandler(userRepo, messageRepo, store)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, store)

	router := routes.SetupRoutes(authHandler, userHandler, messageHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logrus.WithField("port", port).Info("Server started")
	logrus.Fatal(http.ListenAndServe(":"+port, router))
}
