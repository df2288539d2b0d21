// Package engine implements the conversation state machine. It consumes
// typed inbound events, tracks per-user flow state in the session store,
// commits completed dialogs through the usecase layer and emits
// structured replies for the transport adapter to render.
package engine

import (
	"context"
	"strconv"
	"strings"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/session"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

const recentBookingsLimit = 20

type Engine struct {
	sessions *session.Store
	svc      *usecase.Service
	bot      utils.BotConfig
	log      *zap.Logger
}

func New(sessions *session.Store, svc *usecase.Service, bot utils.BotConfig, log *zap.Logger) *Engine {
	return &Engine{
		sessions: sessions,
		svc:      svc,
		bot:      bot,
		log:      log.With(zap.String("component", "engine")),
	}
}

// Handle processes one inbound event. Handling for a single user is
// serialized on the session lock; events from different users run
// concurrently.
func (e *Engine) Handle(ctx context.Context, in Inbound) []Outbound {
	sess, release := e.sessions.Acquire(in.UserID)
	defer release()

	switch {
	case in.Command != CommandNone:
		return e.handleCommand(ctx, in, sess)
	case in.Action != nil:
		return e.handleAction(ctx, in, sess, *in.Action)
	default:
		return e.handleText(ctx, in, sess)
	}
}

// handleCommand runs a top-level command. A command always resets the
// session first: an abandoned flow cannot be resumed.
func (e *Engine) handleCommand(ctx context.Context, in Inbound, sess *session.Session) []Outbound {
	sess.Reset()

	switch in.Command {
	case CommandStart:
		return one(Outbound{Kind: MsgWelcome, MainMenu: true})

	case CommandHelp:
		return one(reply(MsgHelp))

	case CommandEvents:
		return e.showSchedule(ctx)

	case CommandBook:
		return e.startBooking(ctx, sess)

	case CommandMyBookings:
		return e.showMyBookings(ctx, in.UserID)

	case CommandFeedback:
		return e.startFeedback(ctx, in.UserID, sess)

	case CommandCancel:
		return one(Outbound{Kind: MsgFlowCancelled, MainMenu: true})

	case CommandAdminBookings:
		return e.adminBookings(ctx, in.UserID)

	case CommandAdminEvents:
		return e.adminEvents(ctx, in.UserID)

	case CommandAdminEventFeedback:
		return e.adminEventFeedback(ctx, in.UserID, in.CommandArg)
	}

	return one(Outbound{Kind: MsgUnknown, MainMenu: true})
}

// handleText routes free text to the step that expects it. Outside an
// input step the text is not understood.
func (e *Engine) handleText(ctx context.Context, in Inbound, sess *session.Session) []Outbound {
	switch sess.State() {
	case session.StateBookingEnterTickets:
		return e.bookingTicketsInput(ctx, in, sess)
	case session.StateBookingEnterNotes:
		return e.bookingNotesInput(in, sess)
	case session.StateBookingEnterName:
		return e.bookingNameInput(in, sess)
	case session.StateBookingEnterPhone:
		return e.bookingPhoneInput(in, sess)
	case session.StateFeedbackEnterText:
		return e.feedbackTextInput(in, sess)
	}

	return one(Outbound{Kind: MsgUnknown, MainMenu: true})
}

func (e *Engine) handleAction(ctx context.Context, in Inbound, sess *session.Session, action Action) []Outbound {
	switch action.Kind {
	case ActionFilterCategory:
		return e.filterEvents(ctx, action)
	case ActionSelectBookingEvent:
		return e.selectBookingEvent(ctx, sess, action)
	case ActionSelectFeedbackEvent:
		return e.selectFeedbackEvent(ctx, sess, action)
	case ActionCancelBooking:
		return e.cancelOwnBooking(ctx, in.UserID, action)
	case ActionSkipNotes:
		return e.skipNotes(sess)
	case ActionSelectPayment:
		return e.selectPayment(ctx, in, sess, action)
	case ActionSelectRating:
		return e.selectRating(ctx, in, sess, action)
	case ActionAdminConfirm:
		return e.adminTransition(ctx, in.UserID, action.BookingID, entity.BookingStatusConfirmed)
	case ActionAdminCancel:
		return e.adminTransition(ctx, in.UserID, action.BookingID, entity.BookingStatusCancelled)
	}

	return one(Outbound{Kind: MsgUnknown, MainMenu: true})
}

// ---- schedule ----

func (e *Engine) showSchedule(ctx context.Context) []Outbound {
	events, err := e.svc.Event.Upcoming(ctx, nil)
	if err != nil {
		e.log.Error("Failed to list schedule", zap.Error(err))
		return one(reply(MsgInternalError))
	}
	if len(events) == 0 {
		return one(reply(MsgNoEvents))
	}

	return one(Outbound{
		Kind: MsgScheduleMenu,
		Buttons: [][]Button{
			{
				{Action: Action{Kind: ActionFilterCategory, Category: entity.CategoryConcert}},
				{Action: Action{Kind: ActionFilterCategory, Category: entity.CategoryMovie}},
			},
			{
				{Action: Action{Kind: ActionFilterCategory, Category: entity.CategoryPlay}},
				{Action: Action{Kind: ActionFilterCategory}},
			},
		},
	})
}

func (e *Engine) filterEvents(ctx context.Context, action Action) []Outbound {
	var category *entity.Category
	if action.Category != "" {
		category = &action.Category
	}

	events, err := e.svc.Event.Upcoming(ctx, category)
	if err != nil {
		e.log.Error("Failed to filter events",
			zap.Error(err),
			zap.String("category", string(action.Category)),
		)
		return one(reply(MsgInternalError))
	}
	if len(events) == 0 {
		return one(Outbound{Kind: MsgNoEventsInCategory, Category: action.Category})
	}

	return one(Outbound{
		Kind:     MsgEventList,
		Category: action.Category,
		Events:   events,
		Buttons:  bookEventButtons(events),
	})
}

// bookEventButtons offers one booking button per listed event.
func bookEventButtons(events []*entity.Event) [][]Button {
	buttons := make([][]Button, 0, len(events))
	for _, event := range events {
		buttons = append(buttons, []Button{{
			Action: Action{Kind: ActionSelectBookingEvent, EventID: event.ID},
			Event:  event,
		}})
	}
	return buttons
}

func (e *Engine) isAdmin(userID int64) bool {
	return e.bot.IsAdmin(userID)
}

func username(in Inbound) *string {
	if in.Username == "" {
		return nil
	}
	name := in.Username
	return &name
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
