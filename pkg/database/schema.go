package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		time TEXT,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		base_ticket_price NUMERIC(10,2) NOT NULL CHECK (base_ticket_price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL REFERENCES events (id),
		user_id BIGINT NOT NULL,
		username TEXT,
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		tickets_count INTEGER NOT NULL CHECK (tickets_count > 0),
		notes TEXT,
		payment_method TEXT NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL REFERENCES events (id),
		user_id BIGINT NOT NULL,
		text TEXT NOT NULL,
		rating INTEGER,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_event_id ON feedback (event_id)`,
}

// Seed catalog inserted on a fresh database so the bot has something
// to show before events are imported.
var sampleEvents = [][]any{
	{"2025-08-12", "19:00", "Французская классика: Бордо и Бургундия", "concert", 2500.0},
	{"2025-08-19", "20:00", "Вино и сыр: идеальные пары", "concert", 3000.0},
	{"2025-08-26", "18:30", "Новый Свет: вина Чили и Аргентины", "concert", 2800.0},
	{"2025-09-05", "19:30", "Классика кино: Касабланка", "movie", 800.0},
	{"2025-09-12", "20:00", "Гамлет", "play", 1500.0},
	{"2025-09-20", "19:00", "Джазовый вечер", "concert", 2200.0},
}

// InitSchema creates tables if they do not exist and seeds the sample
// event catalog when the events table is empty.
func InitSchema(ctx context.Context, db PgxIface, log *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, ev := range sampleEvents {
		_, err := db.Exec(ctx, `
			INSERT INTO events (date, time, title, category, base_ticket_price)
			VALUES ($1, $2, $3, $4, $5)
		`, ev...)
		if err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
	}

	log.Info("Sample events seeded", zap.Int("count", len(sampleEvents)))
	return nil
}
