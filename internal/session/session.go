// Package session holds transient per-user conversation state. Nothing
// here is persisted: a process restart drops every session and any user
// mid-flow has to start over.
package session

// State is the position of a user inside a conversation flow.
type State int

const (
	StateIdle State = iota
	StateBookingSelectEvent
	StateBookingEnterTickets
	StateBookingEnterNotes
	StateBookingEnterName
	StateBookingEnterPhone
	StateBookingSelectPayment
	StateFeedbackSelectEvent
	StateFeedbackEnterText
	StateFeedbackEnterRating
)

var stateNames = map[State]string{
	StateIdle:                 "idle",
	StateBookingSelectEvent:   "booking_select_event",
	StateBookingEnterTickets:  "booking_enter_tickets",
	StateBookingEnterNotes:    "booking_enter_notes",
	StateBookingEnterName:     "booking_enter_name",
	StateBookingEnterPhone:    "booking_enter_phone",
	StateBookingSelectPayment: "booking_select_payment",
	StateFeedbackSelectEvent:  "feedback_select_event",
	StateFeedbackEnterText:    "feedback_enter_text",
	StateFeedbackEnterRating:  "feedback_enter_rating",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// BookingDraft accumulates the booking form across flow steps. A nil
// field means the corresponding step has not been completed yet; Notes
// stays nil when the user skips the step.
type BookingDraft struct {
	EventID       *int64
	TicketsCount  *int
	Notes         *string
	CustomerName  *string
	CustomerPhone *string
}

// FeedbackDraft accumulates the feedback form across flow steps.
type FeedbackDraft struct {
	EventID *int64
	Text    *string
	Rating  *int
}

// Session is one user's conversation state. Callers must hold the
// session through Store.Acquire while reading or mutating it.
type Session struct {
	state    State
	Booking  BookingDraft
	Feedback FeedbackDraft
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) SetState(state State) {
	s.state = state
}

// Reset returns the session to idle and discards both drafts.
func (s *Session) Reset() {
	s.state = StateIdle
	s.Booking = BookingDraft{}
	s.Feedback = FeedbackDraft{}
}
