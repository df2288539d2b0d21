package engine

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"ticket-booking/internal/dto/request"
	"ticket-booking/internal/session"
	"ticket-booking/internal/usecase"

	"go.uber.org/zap"
)

const (
	feedbackMinLen = 1
	feedbackMaxLen = 500
)

// startFeedback enters the feedback flow. Only events the user has a
// confirmed booking for, or that already took place, are offered.
func (e *Engine) startFeedback(ctx context.Context, userID int64, sess *session.Session) []Outbound {
	events, err := e.svc.Event.AttendedBy(ctx, userID)
	if err != nil {
		e.log.Error("Failed to list attended events",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return one(reply(MsgInternalError))
	}
	if len(events) == 0 {
		return one(reply(MsgNoAttendedEvents))
	}

	sess.SetState(session.StateFeedbackSelectEvent)

	buttons := make([][]Button, 0, len(events))
	for _, event := range events {
		buttons = append(buttons, []Button{{
			Action: Action{Kind: ActionSelectFeedbackEvent, EventID: event.ID},
			Event:  event,
		}})
	}

	return one(Outbound{
		Kind:    MsgChooseFeedbackEvent,
		Events:  events,
		Buttons: buttons,
	})
}

func (e *Engine) selectFeedbackEvent(ctx context.Context, sess *session.Session, action Action) []Outbound {
	event, err := e.svc.Event.ByID(ctx, action.EventID)
	if errors.Is(err, usecase.ErrEventNotFound) {
		sess.Reset()
		return one(reply(MsgEventNotFound))
	}
	if err != nil {
		e.log.Error("Failed to load event for feedback",
			zap.Error(err),
			zap.Int64("event_id", action.EventID),
		)
		return one(reply(MsgInternalError))
	}

	sess.Reset()
	sess.Feedback.EventID = &event.ID
	sess.SetState(session.StateFeedbackEnterText)

	return one(Outbound{Kind: MsgAskFeedbackText, Event: event})
}

// feedbackTextInput validates the feedback length (1-500 characters
// inclusive) and re-prompts in place on failure.
func (e *Engine) feedbackTextInput(in Inbound, sess *session.Session) []Outbound {
	text := strings.TrimSpace(in.Text)
	length := utf8.RuneCountInString(text)
	if length < feedbackMinLen || length > feedbackMaxLen {
		return one(reply(MsgInvalidFeedbackText))
	}

	sess.Feedback.Text = &text
	sess.SetState(session.StateFeedbackEnterRating)

	buttons := make([]Button, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		buttons = append(buttons, Button{
			Action: Action{Kind: ActionSelectRating, Rating: rating},
		})
	}

	return one(Outbound{Kind: MsgChooseRating, Buttons: [][]Button{buttons}})
}

// selectRating is the feedback commit step. Ratings come from a fixed
// menu, so there is no retry path; a failed save sends the user back to
// the start of the flow.
func (e *Engine) selectRating(ctx context.Context, in Inbound, sess *session.Session, action Action) []Outbound {
	if sess.State() != session.StateFeedbackEnterRating ||
		action.Rating < 1 || action.Rating > 5 {
		return one(Outbound{Kind: MsgUnknown, MainMenu: true})
	}

	draft := sess.Feedback
	if draft.EventID == nil || draft.Text == nil {
		sess.Reset()
		return one(Outbound{Kind: MsgUnknown, MainMenu: true})
	}

	rating := action.Rating
	req := &request.CreateFeedbackRequest{
		EventID: *draft.EventID,
		UserID:  in.UserID,
		Text:    *draft.Text,
		Rating:  &rating,
	}

	feedback, err := e.svc.Feedback.CreateFeedback(ctx, req)
	if errors.Is(err, usecase.ErrEventNotFound) {
		sess.Reset()
		return one(reply(MsgEventNotFound))
	}
	if err != nil {
		e.log.Error("Failed to commit feedback",
			zap.Error(err),
			zap.Int64("user_id", in.UserID),
		)
		sess.Reset()
		return one(reply(MsgFeedbackSaveFailed))
	}

	sess.Reset()
	return one(Outbound{Kind: MsgFeedbackSaved, FeedbackID: feedback.ID, MainMenu: true})
}
