package services

import (
	"sync"
	"vendepass-client/internal/domain"
)

// SessionStore holds the single session token for the running client.
// Components receive the session explicitly from Current; nothing reads the
// token from ambient state.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session
	user    domain.User
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Set(session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.user = domain.User{}
}

func (s *SessionStore) SetUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = u
}

// Clear forgets the token and the cached user.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{}
	s.user = domain.User{}
}

func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

func (s *SessionStore) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *SessionStore) Authenticated() bool {
	return s.Current().Valid()
}
