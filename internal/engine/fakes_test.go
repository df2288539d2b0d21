package engine

import (
	"context"
	"sort"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/session"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

// In-memory repositories backing the engine tests.

type fakeEventRepo struct {
	events   map[int64]*entity.Event
	attended map[int64][]int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:   make(map[int64]*entity.Event),
		attended: make(map[int64][]int64),
	}
}

func (r *fakeEventRepo) add(event *entity.Event) {
	copied := *event
	r.events[event.ID] = &copied
}

func (r *fakeEventRepo) markAttended(userID, eventID int64) {
	r.attended[userID] = append(r.attended[userID], eventID)
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	event.ID = int64(len(r.events) + 1)
	r.add(event)
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id int64) (*entity.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindUpcoming(ctx context.Context, category *entity.Category) ([]*entity.Event, error) {
	now := time.Now()
	var out []*entity.Event
	for _, event := range r.events {
		if event.IsPast(now) {
			continue
		}
		if category != nil && event.Category != *category {
			continue
		}
		copied := *event
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, event := range r.events {
		copied := *event
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEventRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.events)), nil
}

func (r *fakeEventRepo) FindAttendedByUser(ctx context.Context, userID int64) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, id := range r.attended[userID] {
		if event, ok := r.events[id]; ok {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	events    *fakeEventRepo
	bookings  map[int64]*entity.Booking
	nextID    int64
	createErr error
}

func newFakeBookingRepo(events *fakeEventRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		events:   events,
		bookings: make(map[int64]*entity.Booking),
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	booking.ID = r.nextID
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) join(booking *entity.Booking) *entity.BookingWithEvent {
	event := r.events.events[booking.EventID]
	return &entity.BookingWithEvent{Booking: *booking, Event: *event}
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*entity.BookingWithEvent, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.join(booking), nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.BookingWithEvent, error) {
	var out []*entity.BookingWithEvent
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			out = append(out, r.join(booking))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.BookingWithEvent, error) {
	var out []*entity.BookingWithEvent
	for _, booking := range r.bookings {
		out = append(out, r.join(booking))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	var n int64
	for _, booking := range r.bookings {
		if booking.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	return true, nil
}

type fakeFeedbackRepo struct {
	items     []*entity.Feedback
	nextID    int64
	createErr error
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.Feedback) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	feedback.ID = r.nextID
	copied := *feedback
	r.items = append(r.items, &copied)
	return nil
}

func (r *fakeFeedbackRepo) FindByEventID(ctx context.Context, eventID int64) ([]*entity.Feedback, error) {
	var out []*entity.Feedback
	for _, feedback := range r.items {
		if feedback.EventID == eventID {
			copied := *feedback
			out = append(out, &copied)
		}
	}
	return out, nil
}

type testApp struct {
	engine   *Engine
	events   *fakeEventRepo
	bookings *fakeBookingRepo
	feedback *fakeFeedbackRepo
}

func newTestApp(admins ...int64) *testApp {
	events := newFakeEventRepo()
	bookings := newFakeBookingRepo(events)
	feedback := &fakeFeedbackRepo{}

	repo := &repository.Repository{
		Event:    events,
		Booking:  bookings,
		Feedback: feedback,
	}
	svc := usecase.NewService(repo, zap.NewNop())

	return &testApp{
		engine:   New(session.NewStore(), svc, utils.BotConfig{AdminIDs: admins}, zap.NewNop()),
		events:   events,
		bookings: bookings,
		feedback: feedback,
	}
}

func futureEvent(id int64, title string, category entity.Category, price float64) *entity.Event {
	return &entity.Event{
		ID:        id,
		Date:      time.Now().AddDate(0, 0, 7),
		Title:     title,
		Category:  category,
		BasePrice: price,
	}
}

func pastEvent(id int64, title string, category entity.Category, price float64) *entity.Event {
	return &entity.Event{
		ID:        id,
		Date:      time.Now().AddDate(0, 0, -7),
		Title:     title,
		Category:  category,
		BasePrice: price,
	}
}

func command(userID int64, cmd Command) Inbound {
	return Inbound{UserID: userID, Command: cmd}
}

func text(userID int64, body string) Inbound {
	return Inbound{UserID: userID, Text: body}
}

func action(userID int64, a Action) Inbound {
	return Inbound{UserID: userID, Action: &a}
}
