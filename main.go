// main.go
package main

import (
	"log"

	"hypnos-booking/cmd"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/usecase"
	"hypnos-booking/internal/wire"
	"hypnos-booking/pkg/database"
	"hypnos-booking/pkg/mq"
	"hypnos-booking/pkg/storage"
	"hypnos-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", config.Booking.Location.String()),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	store, err := storage.NewDisk(config.Media.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Booking events are optional; without AMQP_URL nothing is published.
	var publisher usecase.EventPublisher
	if config.AMQP.URL != "" {
		p, err := mq.NewPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err != nil {
			logger.Warn("Booking events disabled: cannot reach broker", zap.Error(err))
		} else {
			defer p.Close()
			publisher = p
			logger.Info("Booking events enabled", zap.String("exchange", config.AMQP.Exchange))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, store, publisher, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
