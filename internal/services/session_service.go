package services

import (
	"sync"

	"github.com/google/uuid"
)

// SessionUser is who a browser session is logged in as
type SessionUser struct {
	Name  string
	Email string
}

// SessionService tracks logins per browser session
type SessionService interface {
	NewSessionID() string
	Login(sessionID string, user SessionUser)
	Logout(sessionID string)
	CurrentUser(sessionID string) (SessionUser, bool)
}

// SessionServiceImpl implements SessionService in memory
type SessionServiceImpl struct {
	mu    sync.RWMutex
	users map[string]SessionUser
}

// NewSessionService creates an empty session service
func NewSessionService() SessionService {
	return &SessionServiceImpl{users: make(map[string]SessionUser)}
}

// NewSessionID returns a fresh random session id
func (s *SessionServiceImpl) NewSessionID() string {
	return uuid.NewString()
}

// Login records user against sessionID
func (s *SessionServiceImpl) Login(sessionID string, user SessionUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sessionID] = user
}

// Logout forgets sessionID's user
func (s *SessionServiceImpl) Logout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, sessionID)
}

// CurrentUser returns the user logged in on sessionID
func (s *SessionServiceImpl) CurrentUser(sessionID string) (SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[sessionID]
	return user, ok
}
