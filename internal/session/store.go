// Package session keeps the in-memory authentication state of one client.
package session

import (
	"sync"

	"github.com/eshaffer321/studio-go/internal/types"
)

// Store holds the current session. It starts in the loading state until the
// bootstrap call settles.
type Store struct {
	mu          sync.RWMutex
	user        *types.User
	loading     bool
	subscribers map[int]chan types.Session
	nextID      int
}

// NewStore creates a store waiting for bootstrap
func NewStore() *Store {
	return &Store{
		loading:     true,
		subscribers: make(map[int]chan types.Session),
	}
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// BeginBootstrap marks the bootstrap fetch as running
func (s *Store) BeginBootstrap() {
	s.update(func() {
		s.loading = true
	})
}

// FinishBootstrap records the bootstrap result; user may be nil
func (s *Store) FinishBootstrap(user *types.User) {
	s.update(func() {
		s.user = copyUser(user)
		s.loading = false
	})
}

// SetUser replaces the session after login or register
func (s *Store) SetUser(user *types.User) {
	s.update(func() {
		s.user = copyUser(user)
		s.loading = false
	})
}

// Clear drops the user after logout or an unrecoverable auth failure
func (s *Store) Clear() {
	s.update(func() {
		s.user = nil
		s.loading = false
	})
}

// Subscribe returns a channel receiving the latest session after every
// change, starting with the current one. Slow readers only see the newest
// snapshot. The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan types.Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan types.Session, 1)
	ch <- s.snapshotLocked()
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

func (s *Store) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn()
	snap := s.snapshotLocked()
	for _, ch := range s.subscribers {
		// drop a stale pending snapshot
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *Store) snapshotLocked() types.Session {
	return types.Session{User: copyUser(s.user), Loading: s.loading}
}

func copyUser(u *types.User) *types.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
