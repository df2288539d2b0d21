package engine

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/session"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

// startBooking enters the booking flow. It aborts immediately when no
// upcoming event exists.
func (e *Engine) startBooking(ctx context.Context, sess *session.Session) []Outbound {
	events, err := e.svc.Event.Upcoming(ctx, nil)
	if err != nil {
		e.log.Error("Failed to list events for booking", zap.Error(err))
		return one(reply(MsgInternalError))
	}
	if len(events) == 0 {
		return one(reply(MsgNoEventsForBooking))
	}

	sess.SetState(session.StateBookingSelectEvent)

	return one(Outbound{
		Kind:    MsgChooseBookingEvent,
		Events:  events,
		Buttons: bookEventButtons(events),
	})
}

// selectBookingEvent starts collecting the booking form for the chosen
// event. A stale button press behaves like entering the flow afresh.
func (e *Engine) selectBookingEvent(ctx context.Context, sess *session.Session, action Action) []Outbound {
	event, err := e.svc.Event.ByID(ctx, action.EventID)
	if errors.Is(err, usecase.ErrEventNotFound) {
		sess.Reset()
		return one(reply(MsgEventNotFound))
	}
	if err != nil {
		e.log.Error("Failed to load event for booking",
			zap.Error(err),
			zap.Int64("event_id", action.EventID),
		)
		return one(reply(MsgInternalError))
	}

	sess.Reset()
	sess.Booking.EventID = &event.ID
	sess.SetState(session.StateBookingEnterTickets)

	return one(Outbound{Kind: MsgAskTickets, Event: event})
}

// bookingTicketsInput validates the ticket count. Invalid input keeps
// the session in the same state and leaves the draft untouched.
func (e *Engine) bookingTicketsInput(ctx context.Context, in Inbound, sess *session.Session) []Outbound {
	count, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil || count <= 0 {
		return one(reply(MsgInvalidTickets))
	}

	if sess.Booking.EventID == nil {
		sess.Reset()
		return one(Outbound{Kind: MsgUnknown, MainMenu: true})
	}

	event, err := e.svc.Event.ByID(ctx, *sess.Booking.EventID)
	if errors.Is(err, usecase.ErrEventNotFound) {
		sess.Reset()
		return one(reply(MsgEventNotFound))
	}
	if err != nil {
		e.log.Error("Failed to load event for total price", zap.Error(err))
		return one(reply(MsgInternalError))
	}

	sess.Booking.TicketsCount = &count
	sess.SetState(session.StateBookingEnterNotes)

	return one(Outbound{
		Kind:         MsgAskNotes,
		TicketsCount: count,
		TotalPrice:   event.BasePrice * float64(count),
		Buttons:      [][]Button{{{Action: Action{Kind: ActionSkipNotes}}}},
	})
}

func (e *Engine) bookingNotesInput(in Inbound, sess *session.Session) []Outbound {
	text := strings.TrimSpace(in.Text)

	if text == "" {
		sess.Booking.Notes = nil
	} else {
		sess.Booking.Notes = &text
	}

	sess.SetState(session.StateBookingEnterName)
	return one(reply(MsgAskName))
}

// skipNotes is the explicit skip signal for the notes step.
func (e *Engine) skipNotes(sess *session.Session) []Outbound {
	if sess.State() != session.StateBookingEnterNotes {
		return one(Outbound{Kind: MsgUnknown, MainMenu: true})
	}

	sess.Booking.Notes = nil
	sess.SetState(session.StateBookingEnterName)
	return one(reply(MsgAskName))
}

func (e *Engine) bookingNameInput(in Inbound, sess *session.Session) []Outbound {
	name := strings.TrimSpace(in.Text)
	if utf8.RuneCountInString(name) < 2 {
		return one(reply(MsgInvalidName))
	}

	sess.Booking.CustomerName = &name
	sess.SetState(session.StateBookingEnterPhone)
	return one(reply(MsgAskPhone))
}

func (e *Engine) bookingPhoneInput(in Inbound, sess *session.Session) []Outbound {
	phone := strings.TrimSpace(in.Text)
	if !utils.IsValidPhone(phone) {
		return one(reply(MsgInvalidPhone))
	}

	sess.Booking.CustomerPhone = &phone
	sess.SetState(session.StateBookingSelectPayment)

	return one(Outbound{
		Kind: MsgChoosePayment,
		Buttons: [][]Button{{
			{Action: Action{Kind: ActionSelectPayment, Payment: entity.PaymentMethodOnlineStub}},
			{Action: Action{Kind: ActionSelectPayment, Payment: entity.PaymentMethodCash}},
		}},
	})
}

// selectPayment is the commit step. On persistence failure the session
// keeps its state and draft so a retry does not re-enter the form.
func (e *Engine) selectPayment(ctx context.Context, in Inbound, sess *session.Session, action Action) []Outbound {
	if sess.State() != session.StateBookingSelectPayment || !action.Payment.Valid() {
		return one(Outbound{Kind: MsgUnknown, MainMenu: true})
	}

	draft := sess.Booking
	if draft.EventID == nil || draft.TicketsCount == nil ||
		draft.CustomerName == nil || draft.CustomerPhone == nil {
		sess.Reset()
		return one(Outbound{Kind: MsgUnknown, MainMenu: true})
	}

	req := &request.CreateBookingRequest{
		EventID:       *draft.EventID,
		UserID:        in.UserID,
		Username:      username(in),
		CustomerName:  *draft.CustomerName,
		CustomerPhone: *draft.CustomerPhone,
		TicketsCount:  *draft.TicketsCount,
		Notes:         draft.Notes,
		PaymentMethod: string(action.Payment),
	}

	booking, err := e.svc.Booking.CreateBooking(ctx, req)
	if errors.Is(err, usecase.ErrEventNotFound) {
		sess.Reset()
		return one(reply(MsgEventNotFound))
	}
	if err != nil {
		e.log.Error("Failed to commit booking",
			zap.Error(err),
			zap.Int64("user_id", in.UserID),
		)
		return one(reply(MsgBookingCreateFailed))
	}

	sess.Reset()
	return one(Outbound{Kind: MsgBookingCreated, Booking: booking, MainMenu: true})
}

// ---- own bookings ----

func (e *Engine) showMyBookings(ctx context.Context, userID int64) []Outbound {
	bookings, err := e.svc.Booking.UserBookings(ctx, userID)
	if err != nil {
		e.log.Error("Failed to list user bookings",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return one(reply(MsgInternalError))
	}
	if len(bookings) == 0 {
		return one(reply(MsgNoBookings))
	}

	outs := make([]Outbound, 0, len(bookings))
	for _, booking := range bookings {
		out := Outbound{Kind: MsgMyBooking, Booking: booking}
		if booking.Status == entity.BookingStatusPending {
			out.Buttons = [][]Button{{{
				Action: Action{Kind: ActionCancelBooking, BookingID: booking.ID},
			}}}
		}
		outs = append(outs, out)
	}

	return outs
}

func (e *Engine) cancelOwnBooking(ctx context.Context, userID int64, action Action) []Outbound {
	err := e.svc.Booking.CancelOwn(ctx, userID, action.BookingID)
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		return one(reply(MsgBookingNotFound))
	case errors.Is(err, usecase.ErrNotPending):
		return one(reply(MsgOnlyPendingCancellable))
	case err != nil:
		e.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.Int64("booking_id", action.BookingID),
		)
		return one(reply(MsgInternalError))
	}

	return one(Outbound{Kind: MsgBookingCancelled, BookingID: action.BookingID})
}
