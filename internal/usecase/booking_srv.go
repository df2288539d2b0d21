package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/dto/request"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking commits a completed booking dialog. The total price
	// is recomputed from the event's current base price at commit time
	// and frozen on the stored row.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*entity.BookingWithEvent, error)
	UserBookings(ctx context.Context, userID int64) ([]*entity.BookingWithEvent, error)

	// CancelOwn cancels a pending booking on behalf of its owner.
	CancelOwn(ctx context.Context, userID, bookingID int64) error

	// Admin operations. Authorization is checked by the caller.
	Recent(ctx context.Context, limit int) ([]*entity.BookingWithEvent, error)
	Confirm(ctx context.Context, bookingID int64) (*entity.BookingWithEvent, error)
	Cancel(ctx context.Context, bookingID int64) (*entity.BookingWithEvent, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*entity.BookingWithEvent, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	event, err := s.repo.Event.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("find event %d: %w", req.EventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		EventID:       req.EventID,
		UserID:        req.UserID,
		Username:      req.Username,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TicketsCount:  req.TicketsCount,
		Notes:         req.Notes,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		TotalPrice:    event.BasePrice * float64(req.TicketsCount),
		Status:        entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("user_id", req.UserID),
			zap.Int64("event_id", req.EventID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.Float64("total_price", booking.TotalPrice),
	)

	return &entity.BookingWithEvent{Booking: *booking, Event: *event}, nil
}

func (s *bookingService) UserBookings(ctx context.Context, userID int64) ([]*entity.BookingWithEvent, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}

	return bookings, nil
}

func (s *bookingService) CancelOwn(ctx context.Context, userID, bookingID int64) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	// A booking owned by someone else is reported the same way as a
	// missing one.
	if booking == nil || booking.UserID != userID {
		return ErrBookingNotFound
	}
	if booking.Status != entity.BookingStatusPending {
		return ErrNotPending
	}

	updated, err := s.repo.Booking.UpdateStatusFrom(ctx, bookingID,
		entity.BookingStatusPending, entity.BookingStatusCancelled)
	if err != nil {
		return fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}
	if !updated {
		return ErrNotPending
	}

	s.log.Info("Booking cancelled by owner",
		zap.Int64("booking_id", bookingID),
		zap.Int64("user_id", userID),
	)

	return nil
}

func (s *bookingService) Recent(ctx context.Context, limit int) ([]*entity.BookingWithEvent, error) {
	bookings, err := s.repo.Booking.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent bookings: %w", err)
	}

	return bookings, nil
}

func (s *bookingService) Confirm(ctx context.Context, bookingID int64) (*entity.BookingWithEvent, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusConfirmed)
}

func (s *bookingService) Cancel(ctx context.Context, bookingID int64) (*entity.BookingWithEvent, error) {
	return s.transition(ctx, bookingID, entity.BookingStatusCancelled)
}

// transition moves a pending booking to a terminal status and returns
// the booking so the caller can notify its requester.
func (s *bookingService) transition(ctx context.Context, bookingID int64, to entity.BookingStatus) (*entity.BookingWithEvent, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	updated, err := s.repo.Booking.UpdateStatusFrom(ctx, bookingID,
		entity.BookingStatusPending, to)
	if err != nil {
		return nil, fmt.Errorf("update booking %d status: %w", bookingID, err)
	}
	if !updated {
		return nil, ErrNotPending
	}

	s.log.Info("Booking status updated",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(to)),
	)

	booking.Status = to
	return booking, nil
}
