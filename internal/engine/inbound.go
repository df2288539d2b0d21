package engine

import (
	"ticket-booking/internal/data/entity"
)

// Command is a top-level command decoded by the transport adapter.
// Issuing any of them mid-flow resets the session before the command
// runs.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandHelp
	CommandEvents
	CommandBook
	CommandMyBookings
	CommandFeedback
	CommandCancel
	CommandAdminBookings
	CommandAdminEvents
	CommandAdminEventFeedback
)

// ActionKind is the closed set of button actions. Callback payloads are
// decoded into an Action once at the transport boundary, so the engine
// never pattern-matches raw strings.
type ActionKind int

const (
	ActionFilterCategory ActionKind = iota
	ActionSelectBookingEvent
	ActionSelectFeedbackEvent
	ActionCancelBooking
	ActionSelectPayment
	ActionSkipNotes
	ActionSelectRating
	ActionAdminConfirm
	ActionAdminCancel
)

// Action is one decoded button press. Only the fields relevant to the
// Kind are set.
type Action struct {
	Kind      ActionKind
	EventID   int64
	BookingID int64
	// Category filters the schedule; empty means all categories.
	Category entity.Category
	Payment  entity.PaymentMethod
	Rating   int
}

// Inbound is one event from the transport: a command, a button press,
// or free text — exactly one of Command, Action and Text is meaningful.
type Inbound struct {
	UserID   int64
	Username string
	Command  Command
	// CommandArg carries the raw argument string for commands that take
	// one (admin feedback listing).
	CommandArg string
	Text       string
	Action     *Action
}
