package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/session"
)

func startFeedbackFlow(t *testing.T, app *testApp) {
	t.Helper()
	ctx := context.Background()

	outs := app.engine.Handle(ctx, command(userID, CommandFeedback))
	if outs[0].Kind != MsgChooseFeedbackEvent {
		t.Fatalf("expected MsgChooseFeedbackEvent, got %v", outs[0].Kind)
	}

	outs = app.engine.Handle(ctx, action(userID, Action{Kind: ActionSelectFeedbackEvent, EventID: 1}))
	if outs[0].Kind != MsgAskFeedbackText {
		t.Fatalf("expected MsgAskFeedbackText, got %v", outs[0].Kind)
	}
}

func TestFeedbackHappyPath(t *testing.T) {
	app := newTestApp()
	app.events.add(pastEvent(1, "Концерт", entity.CategoryConcert, 500))
	app.events.markAttended(userID, 1)
	ctx := context.Background()

	startFeedbackFlow(t, app)

	outs := app.engine.Handle(ctx, text(userID, "Отличный концерт!"))
	if outs[0].Kind != MsgChooseRating {
		t.Fatalf("expected MsgChooseRating, got %v", outs[0].Kind)
	}
	if len(outs[0].Buttons) != 1 || len(outs[0].Buttons[0]) != 5 {
		t.Fatalf("expected a single row of 5 rating buttons, got %+v", outs[0].Buttons)
	}

	outs = app.engine.Handle(ctx, action(userID, Action{Kind: ActionSelectRating, Rating: 5}))
	if outs[0].Kind != MsgFeedbackSaved || !outs[0].MainMenu {
		t.Fatalf("expected MsgFeedbackSaved with main menu, got %+v", outs[0])
	}

	if len(app.feedback.items) != 1 {
		t.Fatalf("expected 1 stored feedback, got %d", len(app.feedback.items))
	}
	saved := app.feedback.items[0]
	if saved.Text != "Отличный концерт!" || saved.Rating == nil || *saved.Rating != 5 {
		t.Errorf("feedback stored incorrectly: %+v", saved)
	}
	if got := app.engine.sessions.State(userID); got != session.StateIdle {
		t.Errorf("expected idle session after save, got %s", got)
	}
}

func TestFeedbackRequiresAttendedEvents(t *testing.T) {
	app := newTestApp()
	app.events.add(futureEvent(1, "Концерт", entity.CategoryConcert, 500))

	outs := app.engine.Handle(context.Background(), command(userID, CommandFeedback))
	if outs[0].Kind != MsgNoAttendedEvents {
		t.Fatalf("expected MsgNoAttendedEvents, got %v", outs[0].Kind)
	}
}

func TestFeedbackTextLengthBounds(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		body string
		ok   bool
	}{
		{"empty", "", false},
		{"too long", strings.Repeat("ж", 501), false},
		{"single rune", "!", true},
		{"max length", strings.Repeat("ж", 500), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.events.add(pastEvent(1, "Концерт", entity.CategoryConcert, 500))
			app.events.markAttended(userID, 1)

			startFeedbackFlow(t, app)

			outs := app.engine.Handle(ctx, text(userID, tc.body))
			want := MsgChooseRating
			if !tc.ok {
				want = MsgInvalidFeedbackText
			}
			if outs[0].Kind != want {
				t.Fatalf("expected %v, got %v", want, outs[0].Kind)
			}
			if !tc.ok {
				if got := app.engine.sessions.State(userID); got != session.StateFeedbackEnterText {
					t.Errorf("state moved to %s on invalid text", got)
				}
			}
		})
	}
}

func TestFeedbackSaveFailureResetsFlow(t *testing.T) {
	app := newTestApp()
	app.events.add(pastEvent(1, "Концерт", entity.CategoryConcert, 500))
	app.events.markAttended(userID, 1)
	ctx := context.Background()

	startFeedbackFlow(t, app)
	app.engine.Handle(ctx, text(userID, "Хорошо"))

	app.feedback.createErr = errors.New("disk full")
	outs := app.engine.Handle(ctx, action(userID, Action{Kind: ActionSelectRating, Rating: 4}))
	if outs[0].Kind != MsgFeedbackSaveFailed {
		t.Fatalf("expected MsgFeedbackSaveFailed, got %v", outs[0].Kind)
	}
	if got := app.engine.sessions.State(userID); got != session.StateIdle {
		t.Errorf("expected reset session after save failure, got %s", got)
	}
}

func TestStaleRatingButtonIgnored(t *testing.T) {
	app := newTestApp()

	outs := app.engine.Handle(context.Background(),
		action(userID, Action{Kind: ActionSelectRating, Rating: 5}))
	if outs[0].Kind != MsgUnknown {
		t.Fatalf("expected MsgUnknown for stale rating press, got %v", outs[0].Kind)
	}
}
