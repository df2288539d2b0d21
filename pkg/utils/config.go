package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Bot      BotConfig
	Database DatabaseConfig
	Monitor  MonitorConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
}

type BotConfig struct {
	Token    string
	AdminIDs []int64
}

// IsAdmin checks membership in the configured admin allow-list.
func (c BotConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type MonitorConfig struct {
	Enabled bool
	Port    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "ticket-booking")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MONITOR_ENABLED", false)
	viper.SetDefault("MONITOR_PORT", "8080")

	// Missing .env is fine, environment variables still apply.
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	adminIDs, err := parseAdminIDs(viper.GetString("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_IDS: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Bot: BotConfig{
			Token:    token,
			AdminIDs: adminIDs,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Monitor: MonitorConfig{
			Enabled: viper.GetBool("MONITOR_ENABLED"),
			Port:    viper.GetString("MONITOR_PORT"),
		},
	}

	return config, nil
}

func parseAdminIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
