package usecase

import (
	"context"
	"fmt"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"

	"go.uber.org/zap"
)

type EventService interface {
	// Upcoming lists non-past events, optionally filtered by category.
	Upcoming(ctx context.Context, category *entity.Category) ([]*entity.Event, error)
	ByID(ctx context.Context, id int64) (*entity.Event, error)

	// All lists the full catalog including past events (admin view).
	All(ctx context.Context) ([]*entity.Event, error)

	// AttendedBy lists distinct events the user has a confirmed booking
	// for, or whose date has already passed.
	AttendedBy(ctx context.Context, userID int64) ([]*entity.Event, error)
}

type eventService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

func (s *eventService) Upcoming(ctx context.Context, category *entity.Category) ([]*entity.Event, error) {
	if category != nil && !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", string(*category))
	}

	events, err := s.repo.Event.FindUpcoming(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}

	return events, nil
}

func (s *eventService) ByID(ctx context.Context, id int64) (*entity.Event, error) {
	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return event, nil
}

func (s *eventService) All(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.repo.Event.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all events: %w", err)
	}

	return events, nil
}

func (s *eventService) AttendedBy(ctx context.Context, userID int64) ([]*entity.Event, error) {
	events, err := s.repo.Event.FindAttendedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attended events for user %d: %w", userID, err)
	}

	return events, nil
}
