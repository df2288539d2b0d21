// Package monitor serves a small status page and JSON endpoints for
// keeping an eye on the running bot.
package monitor

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-booking/pkg/database"
	"ticket-booking/pkg/middleware"
	"ticket-booking/pkg/utils"
)

type Monitor struct {
	db      database.PgxIface
	config  *utils.Config
	log     *zap.Logger
	started time.Time
	page    *template.Template
}

func New(db database.PgxIface, config *utils.Config, log *zap.Logger) *Monitor {
	return &Monitor{
		db:      db,
		config:  config,
		log:     log.With(zap.String("component", "monitor")),
		started: time.Now(),
		page:    template.Must(template.New("status").Parse(statusPage)),
	}
}

// Router builds the chi router for the monitoring endpoints.
func (m *Monitor) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(m.log))
	r.Use(middleware.Recover(m.log))

	r.Get("/", m.home)
	r.Get("/api/status", m.apiStatus)
	r.Get("/health", m.health)

	return r
}

type statusData struct {
	Uptime      string
	Timestamp   string
	DBStatus    string
	TokenStatus string
	AdminCount  int
}

func (m *Monitor) home(w http.ResponseWriter, r *http.Request) {
	data := statusData{
		Uptime:      m.uptime(),
		Timestamp:   time.Now().Format("15:04:05"),
		DBStatus:    "✅ Подключена",
		TokenStatus: maskToken(m.config.Bot.Token),
		AdminCount:  len(m.config.Bot.AdminIDs),
	}
	if err := m.db.Ping(r.Context()); err != nil {
		data.DBStatus = "❌ Недоступна"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := m.page.Execute(w, data); err != nil {
		m.log.Error("Failed to render status page", zap.Error(err))
	}
}

func (m *Monitor) apiStatus(w http.ResponseWriter, r *http.Request) {
	dbConnected := m.db.Ping(r.Context()) == nil

	utils.ResponseSuccess(w, "status", map[string]any{
		"status":           "running",
		"uptime":           m.uptime(),
		"timestamp":        time.Now().Format("15:04:05"),
		"db_connected":     dbConnected,
		"token_configured": m.config.Bot.Token != "",
		"admin_count":      len(m.config.Bot.AdminIDs),
	})
}

func (m *Monitor) health(w http.ResponseWriter, r *http.Request) {
	if err := m.db.Ping(r.Context()); err != nil {
		m.log.Warn("Health check failed", zap.Error(err))
		utils.ResponseInternalError(w, "database unreachable")
		return
	}

	utils.ResponseSuccess(w, "ok", map[string]any{
		"uptime": m.uptime(),
	})
}

func (m *Monitor) uptime() string {
	elapsed := time.Since(m.started)
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	return fmt.Sprintf("%dч %dм", hours, minutes)
}

func maskToken(token string) string {
	if len(token) < 10 {
		return "❌ Не настроен"
	}
	return fmt.Sprintf("✅ Настроен (%s...)", token[:10])
}

const statusPage = `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Telegram Bot Monitor</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .status { padding: 15px; border-radius: 5px; margin: 20px 0; background: #d4edda; color: #155724; border: 1px solid #c3e6cb; }
        .info-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin: 20px 0; }
        .info-card { background: #f8f9fa; padding: 15px; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🤖 Telegram Bot Monitor</h1>
        <p>Мониторинг бота для бронирования билетов</p>
        <div class="status">🤖 Статус бота: ✅ Работает</div>
        <div class="info-grid">
            <div class="info-card">
                <h3>📊 Информация</h3>
                <p><strong>Время работы:</strong> {{.Uptime}}</p>
                <p><strong>Последняя проверка:</strong> {{.Timestamp}}</p>
                <p><strong>База данных:</strong> {{.DBStatus}}</p>
            </div>
            <div class="info-card">
                <h3>⚙️ Конфигурация</h3>
                <p><strong>Токен бота:</strong> {{.TokenStatus}}</p>
                <p><strong>Администраторы:</strong> {{.AdminCount}}</p>
            </div>
        </div>
    </div>
</body>
</html>
`
