// main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ticket-booking/cmd"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/wire"
	"ticket-booking/pkg/database"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.InitSchema(context.Background(), db, logger); err != nil {
		logger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, db, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if app.Monitor != nil {
		logger.Info("Starting monitor server", zap.String("port", config.Monitor.Port))
		go cmd.MonitorServer(app.Monitor, config.Monitor.Port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting bot polling")
	if err := app.Bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Bot stopped", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
