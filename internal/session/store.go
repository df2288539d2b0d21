package session

import (
	"sync"
)

type entry struct {
	mu      sync.Mutex
	session Session
}

// Store keeps one session per user identity. Lookups for different
// users may run concurrently; all handling for a single user must go
// through Acquire, which serializes it on a per-user lock.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

func NewStore() *Store {
	return &Store{
		entries: make(map[int64]*entry),
	}
}

func (s *Store) get(userID int64) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; !ok {
		e = &entry{}
		s.entries[userID] = e
	}
	return e
}

// Acquire locks the user's session (creating an idle one if absent) and
// returns it with a release func. Two concurrent events from the same
// user are handled one after the other.
func (s *Store) Acquire(userID int64) (*Session, func()) {
	e := s.get(userID)
	e.mu.Lock()
	return &e.session, e.mu.Unlock
}

// State reads the current state without retaining the session.
func (s *Store) State(userID int64) State {
	sess, release := s.Acquire(userID)
	defer release()
	return sess.State()
}

func (s *Store) SetState(userID int64, state State) {
	sess, release := s.Acquire(userID)
	defer release()
	sess.SetState(state)
}

// Clear resets the user's session to idle and discards any draft.
func (s *Store) Clear(userID int64) {
	sess, release := s.Acquire(userID)
	defer release()
	sess.Reset()
}
