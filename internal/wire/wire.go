// internal/wire/wire.go
package wire

import (
	"ticket-booking/internal/adaptor"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/engine"
	"ticket-booking/internal/monitor"
	"ticket-booking/internal/session"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/database"
	"ticket-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled application surfaces.
type App struct {
	Bot *adaptor.Telegram
	// Monitor is nil when the monitoring server is disabled.
	Monitor *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, db database.PgxIface, config *utils.Config, logger *zap.Logger) (*App, error) {
	service := usecase.NewService(repo, logger)
	sessions := session.NewStore()
	eng := engine.New(sessions, service, config.Bot, logger)

	bot, err := adaptor.NewTelegram(config.Bot.Token, config.App.Debug, eng, logger)
	if err != nil {
		return nil, err
	}

	app := &App{Bot: bot}
	if config.Monitor.Enabled {
		app.Monitor = monitor.New(db, config, logger).Router()
	}

	return app, nil
}
