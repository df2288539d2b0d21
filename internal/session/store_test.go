package session

import (
	"sync"
	"testing"
)

func TestStoreDefaultsToIdle(t *testing.T) {
	store := NewStore()

	if got := store.State(42); got != StateIdle {
		t.Fatalf("expected idle for unknown user, got %s", got)
	}
}

func TestStoreKeepsUsersSeparate(t *testing.T) {
	store := NewStore()

	store.SetState(1, StateBookingEnterTickets)

	if got := store.State(2); got != StateIdle {
		t.Errorf("state leaked to another user: %s", got)
	}
	if got := store.State(1); got != StateBookingEnterTickets {
		t.Errorf("state lost: %s", got)
	}
}

func TestClearDiscardsDrafts(t *testing.T) {
	store := NewStore()

	sess, release := store.Acquire(1)
	eventID := int64(7)
	sess.Booking.EventID = &eventID
	sess.SetState(StateBookingEnterNotes)
	release()

	store.Clear(1)

	sess, release = store.Acquire(1)
	defer release()
	if sess.State() != StateIdle {
		t.Errorf("expected idle after clear, got %s", sess.State())
	}
	if sess.Booking.EventID != nil {
		t.Error("booking draft survived clear")
	}
}

func TestAcquireSerializesPerUser(t *testing.T) {
	store := NewStore()

	const workers = 50
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, release := store.Acquire(1)
			counter++
			release()
		}()
	}
	wg.Wait()

	// Without per-user serialization this increment would race.
	if counter != workers {
		t.Fatalf("expected %d increments, got %d", workers, counter)
	}
}

func TestResetKeepsSessionUsable(t *testing.T) {
	store := NewStore()

	sess, release := store.Acquire(1)
	sess.SetState(StateFeedbackEnterText)
	text := "привет"
	sess.Feedback.Text = &text
	sess.Reset()

	if sess.State() != StateIdle || sess.Feedback.Text != nil {
		t.Errorf("reset incomplete: state=%s text=%v", sess.State(), sess.Feedback.Text)
	}
	release()

	if got := store.State(1); got != StateIdle {
		t.Errorf("expected idle after reset, got %s", got)
	}
}
