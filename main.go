package main

import (
	"os"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/routes"
	"salondesk-backend/services"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}
	utils.InitLogger()

	db := config.MustDB()

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Client{},
		&models.Appointment{},
		&models.ReminderLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	clientStore := stores.NewClientStore(db)
	logStore := stores.NewReminderLogStore(db)
	reminderService := services.DefaultReminderService(config.ReminderSendDelay(), logStore)

	scheduler := services.NewScheduler(clientStore, reminderService)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
	}
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db)
	log.Info().Str("port", port).Msg("Starting server")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}
