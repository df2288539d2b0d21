package engine

import (
	"context"
	"errors"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/usecase"

	"go.uber.org/zap"
)

// Every admin operation checks the allow-list before any side effect.

func (e *Engine) adminBookings(ctx context.Context, userID int64) []Outbound {
	if !e.isAdmin(userID) {
		return one(reply(MsgForbidden))
	}

	bookings, err := e.svc.Booking.Recent(ctx, recentBookingsLimit)
	if err != nil {
		e.log.Error("Failed to list recent bookings", zap.Error(err))
		return one(reply(MsgInternalError))
	}
	if len(bookings) == 0 {
		return one(reply(MsgAdminNoBookings))
	}

	outs := make([]Outbound, 0, len(bookings))
	for _, booking := range bookings {
		out := Outbound{Kind: MsgAdminBooking, Booking: booking}
		if booking.Status == entity.BookingStatusPending {
			out.Buttons = [][]Button{{
				{Action: Action{Kind: ActionAdminConfirm, BookingID: booking.ID}},
				{Action: Action{Kind: ActionAdminCancel, BookingID: booking.ID}},
			}}
		}
		outs = append(outs, out)
	}

	return outs
}

func (e *Engine) adminEvents(ctx context.Context, userID int64) []Outbound {
	if !e.isAdmin(userID) {
		return one(reply(MsgForbidden))
	}

	events, err := e.svc.Event.All(ctx)
	if err != nil {
		e.log.Error("Failed to list all events", zap.Error(err))
		return one(reply(MsgInternalError))
	}
	if len(events) == 0 {
		return one(reply(MsgAdminNoEvents))
	}

	return one(Outbound{Kind: MsgAdminEventList, Events: events})
}

func (e *Engine) adminEventFeedback(ctx context.Context, userID int64, arg string) []Outbound {
	if !e.isAdmin(userID) {
		return one(reply(MsgForbidden))
	}

	eventID, err := parseID(arg)
	if err != nil || eventID <= 0 {
		return one(reply(MsgEventFeedbackUsage))
	}

	feedbacks, err := e.svc.Feedback.ByEvent(ctx, eventID)
	if err != nil {
		e.log.Error("Failed to list event feedback",
			zap.Error(err),
			zap.Int64("event_id", eventID),
		)
		return one(reply(MsgInternalError))
	}
	if len(feedbacks) == 0 {
		return one(Outbound{Kind: MsgEventFeedbackEmpty, EventID: eventID})
	}

	return one(Outbound{Kind: MsgEventFeedbackList, EventID: eventID, Feedback: feedbacks})
}

// adminTransition confirms or cancels a pending booking and notifies
// its original requester. A no-op transition notifies nobody.
func (e *Engine) adminTransition(ctx context.Context, userID, bookingID int64, to entity.BookingStatus) []Outbound {
	if !e.isAdmin(userID) {
		return one(reply(MsgForbidden))
	}

	var (
		booking *entity.BookingWithEvent
		err     error
	)
	if to == entity.BookingStatusConfirmed {
		booking, err = e.svc.Booking.Confirm(ctx, bookingID)
	} else {
		booking, err = e.svc.Booking.Cancel(ctx, bookingID)
	}

	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		return one(reply(MsgBookingNotFound))
	case errors.Is(err, usecase.ErrNotPending):
		return one(reply(MsgAdminNotPending))
	case err != nil:
		e.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.String("status", string(to)),
		)
		return one(reply(MsgInternalError))
	}

	adminKind, userKind := MsgAdminConfirmed, MsgUserBookingConfirmed
	if to == entity.BookingStatusCancelled {
		adminKind, userKind = MsgAdminCancelled, MsgUserBookingCancelled
	}

	return []Outbound{
		{Kind: adminKind, BookingID: bookingID},
		{To: booking.UserID, Kind: userKind, BookingID: bookingID},
	}
}
