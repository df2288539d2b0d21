package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/dto/request"

	"go.uber.org/zap"
)

type stubEventRepo struct {
	event *entity.Event
}

func (r *stubEventRepo) Create(ctx context.Context, event *entity.Event) error { return nil }
func (r *stubEventRepo) FindByID(ctx context.Context, id int64) (*entity.Event, error) {
	if r.event != nil && r.event.ID == id {
		copied := *r.event
		return &copied, nil
	}
	return nil, nil
}
func (r *stubEventRepo) FindUpcoming(ctx context.Context, category *entity.Category) ([]*entity.Event, error) {
	return nil, nil
}
func (r *stubEventRepo) FindAll(ctx context.Context) ([]*entity.Event, error) { return nil, nil }
func (r *stubEventRepo) Count(ctx context.Context) (int64, error)             { return 0, nil }
func (r *stubEventRepo) FindAttendedByUser(ctx context.Context, userID int64) ([]*entity.Event, error) {
	return nil, nil
}

type stubBookingRepo struct {
	stored *entity.Booking
	event  *entity.Event
}

func (r *stubBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	booking.ID = 1
	copied := *booking
	r.stored = &copied
	return nil
}
func (r *stubBookingRepo) FindByID(ctx context.Context, id int64) (*entity.BookingWithEvent, error) {
	if r.stored == nil || r.stored.ID != id {
		return nil, nil
	}
	return &entity.BookingWithEvent{Booking: *r.stored, Event: *r.event}, nil
}
func (r *stubBookingRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingWithEvent, error) {
	return nil, nil
}
func (r *stubBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.BookingWithEvent, error) {
	return nil, nil
}
func (r *stubBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	return 0, nil
}
func (r *stubBookingRepo) UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	if r.stored == nil || r.stored.ID != id || r.stored.Status != from {
		return false, nil
	}
	r.stored.Status = to
	return true, nil
}

func newBookingFixture() (BookingService, *stubBookingRepo) {
	event := &entity.Event{
		ID:        1,
		Date:      time.Now().AddDate(0, 0, 3),
		Title:     "Концерт",
		Category:  entity.CategoryConcert,
		BasePrice: 500,
	}
	bookings := &stubBookingRepo{event: event}
	repo := &repository.Repository{
		Event:   &stubEventRepo{event: event},
		Booking: bookings,
	}
	return NewBookingService(repo, zap.NewNop()), bookings
}

func validRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		EventID:       1,
		UserID:        100,
		CustomerName:  "Иван Петров",
		CustomerPhone: "+79991234567",
		TicketsCount:  2,
		PaymentMethod: "cash",
	}
}

func TestCreateBookingFreezesTotalPrice(t *testing.T) {
	svc, bookings := newBookingFixture()

	created, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.TotalPrice != 1000 {
		t.Errorf("expected total 1000, got %v", created.TotalPrice)
	}
	if created.Status != entity.BookingStatusPending {
		t.Errorf("expected pending, got %s", created.Status)
	}
	if bookings.stored.TotalPrice != 1000 {
		t.Errorf("stored total differs: %v", bookings.stored.TotalPrice)
	}
}

func TestCreateBookingRejectsInvalidInput(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	for _, mutate := range []func(*request.CreateBookingRequest){
		func(r *request.CreateBookingRequest) { r.CustomerPhone = "12345" },
		func(r *request.CreateBookingRequest) { r.CustomerName = "Я" },
		func(r *request.CreateBookingRequest) { r.TicketsCount = 0 },
		func(r *request.CreateBookingRequest) { r.PaymentMethod = "card" },
	} {
		req := validRequest()
		mutate(req)
		if _, err := svc.CreateBooking(ctx, req); err == nil {
			t.Errorf("request %+v passed validation", req)
		}
	}
}

func TestCreateBookingUnknownEvent(t *testing.T) {
	svc, _ := newBookingFixture()

	req := validRequest()
	req.EventID = 99
	_, err := svc.CreateBooking(context.Background(), req)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestCancelOwnChecksOwnership(t *testing.T) {
	svc, bookings := newBookingFixture()
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, validRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.CancelOwn(ctx, 200, 1); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("foreign cancel: expected ErrBookingNotFound, got %v", err)
	}

	if err := svc.CancelOwn(ctx, 100, 1); err != nil {
		t.Errorf("owner cancel failed: %v", err)
	}
	if bookings.stored.Status != entity.BookingStatusCancelled {
		t.Errorf("booking not cancelled: %s", bookings.stored.Status)
	}

	if err := svc.CancelOwn(ctx, 100, 1); !errors.Is(err, ErrNotPending) {
		t.Errorf("second cancel: expected ErrNotPending, got %v", err)
	}
}

func TestConfirmThenRepeatIsNotPending(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, validRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	confirmed, err := svc.Confirm(ctx, 1)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != entity.BookingStatusConfirmed {
		t.Errorf("expected confirmed, got %s", confirmed.Status)
	}

	if _, err := svc.Confirm(ctx, 1); !errors.Is(err, ErrNotPending) {
		t.Errorf("repeat confirm: expected ErrNotPending, got %v", err)
	}
	if _, err := svc.Cancel(ctx, 1); !errors.Is(err, ErrNotPending) {
		t.Errorf("cancel after confirm: expected ErrNotPending, got %v", err)
	}
}
