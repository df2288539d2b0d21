package engine

import (
	"context"
	"sync"
	"testing"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/session"
)

func TestStartCommandResetsActiveFlow(t *testing.T) {
	app := newTestApp()
	app.events.add(futureEvent(1, "Концерт", entity.CategoryConcert, 500))
	ctx := context.Background()

	app.engine.Handle(ctx, command(userID, CommandBook))
	app.engine.Handle(ctx, action(userID, Action{Kind: ActionSelectBookingEvent, EventID: 1}))

	outs := app.engine.Handle(ctx, command(userID, CommandStart))
	if outs[0].Kind != MsgWelcome || !outs[0].MainMenu {
		t.Fatalf("expected welcome with main menu, got %+v", outs[0])
	}
	if got := app.engine.sessions.State(userID); got != session.StateIdle {
		t.Errorf("expected idle session after /start, got %s", got)
	}

	// The abandoned draft must not leak into a fresh flow.
	outs = app.engine.Handle(ctx, text(userID, "3"))
	if outs[0].Kind != MsgUnknown {
		t.Errorf("expected MsgUnknown outside a flow, got %v", outs[0].Kind)
	}
}

func TestCancelCommandAbortsFlow(t *testing.T) {
	app := newTestApp()
	app.events.add(futureEvent(1, "Концерт", entity.CategoryConcert, 500))
	ctx := context.Background()

	app.engine.Handle(ctx, command(userID, CommandBook))
	outs := app.engine.Handle(ctx, command(userID, CommandCancel))
	if outs[0].Kind != MsgFlowCancelled || !outs[0].MainMenu {
		t.Fatalf("expected flow cancelled with main menu, got %+v", outs[0])
	}
	if got := app.engine.sessions.State(userID); got != session.StateIdle {
		t.Errorf("expected idle session, got %s", got)
	}
}

func TestScheduleMenuAndFilter(t *testing.T) {
	app := newTestApp()
	app.events.add(futureEvent(1, "Джаз", entity.CategoryConcert, 500))
	app.events.add(futureEvent(2, "Кино", entity.CategoryMovie, 400))
	app.events.add(pastEvent(3, "Прошедший", entity.CategoryConcert, 100))
	ctx := context.Background()

	outs := app.engine.Handle(ctx, command(userID, CommandEvents))
	if outs[0].Kind != MsgScheduleMenu {
		t.Fatalf("expected MsgScheduleMenu, got %v", outs[0].Kind)
	}
	var buttons int
	for _, row := range outs[0].Buttons {
		buttons += len(row)
	}
	if buttons != 4 {
		t.Errorf("expected 4 filter buttons, got %d", buttons)
	}

	outs = app.engine.Handle(ctx, action(userID, Action{Kind: ActionFilterCategory, Category: entity.CategoryConcert}))
	if outs[0].Kind != MsgEventList {
		t.Fatalf("expected MsgEventList, got %v", outs[0].Kind)
	}
	if len(outs[0].Events) != 1 || outs[0].Events[0].ID != 1 {
		t.Errorf("past or foreign-category events leaked into filter: %+v", outs[0].Events)
	}

	outs = app.engine.Handle(ctx, action(userID, Action{Kind: ActionFilterCategory, Category: entity.CategoryPlay}))
	if outs[0].Kind != MsgNoEventsInCategory {
		t.Fatalf("expected MsgNoEventsInCategory, got %v", outs[0].Kind)
	}
}

func TestScheduleEmpty(t *testing.T) {
	app := newTestApp()

	outs := app.engine.Handle(context.Background(), command(userID, CommandEvents))
	if outs[0].Kind != MsgNoEvents {
		t.Fatalf("expected MsgNoEvents, got %v", outs[0].Kind)
	}
}

func TestBookWithNoUpcomingEvents(t *testing.T) {
	app := newTestApp()
	app.events.add(pastEvent(1, "Прошедший", entity.CategoryConcert, 100))

	outs := app.engine.Handle(context.Background(), command(userID, CommandBook))
	if outs[0].Kind != MsgNoEventsForBooking {
		t.Fatalf("expected MsgNoEventsForBooking, got %v", outs[0].Kind)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	app := newTestApp()
	app.events.add(futureEvent(1, "Концерт", entity.CategoryConcert, 500))
	ctx := context.Background()

	app.engine.Handle(ctx, command(userID, CommandBook))
	app.engine.Handle(ctx, action(userID, Action{Kind: ActionSelectBookingEvent, EventID: 1}))

	other := int64(200)
	outs := app.engine.Handle(ctx, text(other, "3"))
	if outs[0].Kind != MsgUnknown {
		t.Errorf("another user's flow state leaked: %v", outs[0].Kind)
	}
	if got := app.engine.sessions.State(userID); got != session.StateBookingEnterTickets {
		t.Errorf("first user's state was disturbed: %s", got)
	}
}

func TestConcurrentEventsFromOneUser(t *testing.T) {
	app := newTestApp()
	app.events.add(futureEvent(1, "Концерт", entity.CategoryConcert, 500))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.engine.Handle(ctx, command(userID, CommandBook))
			app.engine.Handle(ctx, text(userID, "2"))
		}()
	}
	wg.Wait()

	// No booking can be created from these partial flows.
	if len(app.bookings.bookings) != 0 {
		t.Errorf("partial flows produced %d bookings", len(app.bookings.bookings))
	}
}
