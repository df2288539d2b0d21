package usecase

import (
	"ticket-booking/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Event    EventService
	Booking  BookingService
	Feedback FeedbackService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	return &Service{
		Event:    NewEventService(repo, log),
		Booking:  NewBookingService(repo, log),
		Feedback: NewFeedbackService(repo, log),
	}
}
