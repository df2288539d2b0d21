package repository

import (
	"context"
	"fmt"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const bookingJoinColumns = `
	b.id, b.event_id, b.user_id, b.username, b.customer_name, b.customer_phone,
	b.tickets_count, b.notes, b.payment_method, b.total_price, b.status,
	b.created_at, b.updated_at,
	e.id, e.date, e.time, e.title, e.category, e.base_ticket_price
`

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.BookingWithEvent, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingWithEvent, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.BookingWithEvent, error)
	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)

	// UpdateStatusFrom changes status only when the booking currently has
	// the expected status. It reports whether a row was updated.
	UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (event_id, user_id, username, customer_name, customer_phone,
			tickets_count, notes, payment_method, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		booking.EventID,
		booking.UserID,
		booking.Username,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.TicketsCount,
		booking.Notes,
		booking.PaymentMethod,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("event_id", booking.EventID),
			zap.Int64("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking for event %d: %w", booking.EventID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.BookingWithEvent, error) {
	query := `
		SELECT ` + bookingJoinColumns + `
		FROM bookings b
		JOIN events e ON b.event_id = e.id
		WHERE b.id = $1
	`

	var booking entity.BookingWithEvent
	err := scanBookingRow(r.db.QueryRow(ctx, query, id), &booking)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingWithEvent, error) {
	query := `
		SELECT ` + bookingJoinColumns + `
		FROM bookings b
		JOIN events e ON b.event_id = e.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	return scanBookings(rows, r.log)
}

func (r *bookingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.BookingWithEvent, error) {
	query := `
		SELECT ` + bookingJoinColumns + `
		FROM bookings b
		JOIN events e ON b.event_id = e.id
		ORDER BY b.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent bookings",
			zap.Error(err),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find recent bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows, r.log)
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count bookings by status %s: %w", string(status), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking %d status to %s: %w", id, string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func scanBookingRow(row pgx.Row, booking *entity.BookingWithEvent) error {
	return row.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.UserID,
		&booking.Username,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.TicketsCount,
		&booking.Notes,
		&booking.PaymentMethod,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.Event.ID,
		&booking.Event.Date,
		&booking.Event.Time,
		&booking.Event.Title,
		&booking.Event.Category,
		&booking.Event.BasePrice,
	)
}

func scanBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.BookingWithEvent, error) {
	var bookings []*entity.BookingWithEvent
	for rows.Next() {
		var booking entity.BookingWithEvent
		if err := scanBookingRow(rows, &booking); err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
