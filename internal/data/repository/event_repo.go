package repository

import (
	"context"
	"fmt"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id int64) (*entity.Event, error)
	// FindUpcoming returns non-past events, optionally restricted to a
	// category, ordered by date and time.
	FindUpcoming(ctx context.Context, category *entity.Category) ([]*entity.Event, error)
	FindAll(ctx context.Context) ([]*entity.Event, error)
	Count(ctx context.Context) (int64, error)

	// Business queries
	FindAttendedByUser(ctx context.Context, userID int64) ([]*entity.Event, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (date, time, title, category, base_ticket_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		event.Date,
		event.Time,
		event.Title,
		event.Category,
		event.BasePrice,
	).Scan(&event.ID)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("title", event.Title),
		)
		return fmt.Errorf("create event %q: %w", event.Title, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `
		SELECT id, date, time, title, category, base_ticket_price
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Date,
		&event.Time,
		&event.Title,
		&event.Category,
		&event.BasePrice,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.Int64("event_id", id),
		)
		return nil, fmt.Errorf("find event by ID %d: %w", id, err)
	}

	return &event, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context, category *entity.Category) ([]*entity.Event, error) {
	query := `
		SELECT id, date, time, title, category, base_ticket_price
		FROM events
		WHERE date >= CURRENT_DATE
		ORDER BY date, time
	`
	args := []any{}

	if category != nil {
		query = `
			SELECT id, date, time, title, category, base_ticket_price
			FROM events
			WHERE date >= CURRENT_DATE AND category = $1
			ORDER BY date, time
		`
		args = append(args, *category)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find upcoming events", zap.Error(err))
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows, r.log)
}

func (r *eventRepository) FindAll(ctx context.Context) ([]*entity.Event, error) {
	query := `
		SELECT id, date, time, title, category, base_ticket_price
		FROM events
		ORDER BY date, time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all events", zap.Error(err))
		return nil, fmt.Errorf("find all events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows, r.log)
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}

func (r *eventRepository) FindAttendedByUser(ctx context.Context, userID int64) ([]*entity.Event, error) {
	query := `
		SELECT DISTINCT e.id, e.date, e.time, e.title, e.category, e.base_ticket_price
		FROM events e
		JOIN bookings b ON e.id = b.event_id
		WHERE b.user_id = $1
		AND (b.status = 'confirmed' OR e.date < CURRENT_DATE)
		ORDER BY e.date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find attended events",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find attended events for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanEvents(rows, r.log)
}

func scanEvents(rows pgx.Rows, log *zap.Logger) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.Date,
			&event.Time,
			&event.Title,
			&event.Category,
			&event.BasePrice,
		)
		if err != nil {
			log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}
