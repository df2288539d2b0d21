package repository

import (
	"ticket-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Event    EventRepository
	Booking  BookingRepository
	Feedback FeedbackRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Event:    NewEventRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Feedback: NewFeedbackRepository(db, log),
	}
}
