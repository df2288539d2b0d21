package engine

import (
	"ticket-booking/internal/data/entity"
)

// MsgKind identifies the semantic content of an outbound message. The
// transport adapter turns each kind into presentation text and
// keyboards; the engine never builds user-facing strings.
type MsgKind int

const (
	MsgWelcome MsgKind = iota
	MsgHelp
	MsgUnknown
	MsgFlowCancelled
	MsgForbidden
	MsgInternalError

	// Schedule
	MsgScheduleMenu
	MsgNoEvents
	MsgEventList
	MsgNoEventsInCategory

	// Booking flow
	MsgChooseBookingEvent
	MsgNoEventsForBooking
	MsgEventNotFound
	MsgAskTickets
	MsgInvalidTickets
	MsgAskNotes
	MsgAskName
	MsgInvalidName
	MsgAskPhone
	MsgInvalidPhone
	MsgChoosePayment
	MsgBookingCreated
	MsgBookingCreateFailed

	// Own bookings
	MsgNoBookings
	MsgMyBooking
	MsgBookingNotFound
	MsgOnlyPendingCancellable
	MsgBookingCancelled

	// Feedback flow
	MsgNoAttendedEvents
	MsgChooseFeedbackEvent
	MsgAskFeedbackText
	MsgInvalidFeedbackText
	MsgChooseRating
	MsgFeedbackSaved
	MsgFeedbackSaveFailed

	// Admin
	MsgAdminNoBookings
	MsgAdminBooking
	MsgAdminNoEvents
	MsgAdminEventList
	MsgEventFeedbackUsage
	MsgEventFeedbackEmpty
	MsgEventFeedbackList
	MsgAdminConfirmed
	MsgAdminCancelled
	MsgAdminNotPending

	// Notifications routed to the booking's original requester
	MsgUserBookingConfirmed
	MsgUserBookingCancelled
)

// Button is one selectable action offered with a message. Event gives
// the adapter context for labelling event-selection buttons.
type Button struct {
	Action Action
	Event  *entity.Event
}

// Outbound is one structured reply. To is the recipient user id; zero
// means the originator of the inbound event.
type Outbound struct {
	To   int64
	Kind MsgKind

	Event    *entity.Event
	Events   []*entity.Event
	Booking  *entity.BookingWithEvent
	Feedback []*entity.Feedback

	EventID      int64
	BookingID    int64
	FeedbackID   int64
	TicketsCount int
	TotalPrice   float64
	// Category echoes the applied schedule filter; empty means all.
	Category entity.Category

	Buttons  [][]Button
	MainMenu bool
}

func reply(kind MsgKind) Outbound {
	return Outbound{Kind: kind}
}

func one(out Outbound) []Outbound {
	return []Outbound{out}
}
