// Package memory keeps dialogue state in process memory.
package memory

import (
	"context"
	"sync"

	"vibetracker/internal/domain"
	"vibetracker/internal/repository"
)

type keyLock struct {
	sem  chan struct{}
	refs int
}

// StateStore implements repository.StateStore on a map
type StateStore struct {
	mu     sync.RWMutex
	states map[int64]domain.DialogueState

	locksMu sync.Mutex
	locks   map[int64]*keyLock
}

// NewStateStore creates an empty in-memory state store
func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[int64]domain.DialogueState),
		locks:  make(map[int64]*keyLock),
	}
}

// Load returns a copy of the user's state, or nil when idle
func (s *StateStore) Load(_ context.Context, userKey int64) (*domain.DialogueState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userKey]
	if !ok {
		return nil, nil
	}
	clone := state.Clone()
	return &clone, nil
}

// Save overwrites the user's state
func (s *StateStore) Save(_ context.Context, state domain.DialogueState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.UserKey] = state.Clone()
	return nil
}

// Clear removes the user's state. Clearing an idle user is a no-op.
func (s *StateStore) Clear(_ context.Context, userKey int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userKey)
	return nil
}

// Lock blocks until the user's key is free or ctx is done
func (s *StateStore) Lock(ctx context.Context, userKey int64) (repository.UnlockFunc, error) {
	s.locksMu.Lock()
	l, ok := s.locks[userKey]
	if !ok {
		l = &keyLock{sem: make(chan struct{}, 1)}
		s.locks[userKey] = l
	}
	l.refs++
	s.locksMu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		s.release(userKey, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-l.sem
			s.release(userKey, l)
		})
		return nil
	}, nil
}

func (s *StateStore) release(userKey int64, l *keyLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userKey)
	}
}
