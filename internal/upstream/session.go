package upstream

import "sync"

// Session supplies the bearer token attached to upstream requests and is
// cleared when the upstream rejects it. Passed explicitly to the client, not
// held as a package singleton.
type Session interface {
	Token() string
	Logout()
}

// MemorySession is a process-wide in-memory session safe for concurrent use.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

// NewMemorySession seeds a session with the provided token.
func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

// Token returns the current bearer token, empty once logged out.
func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the stored token, e.g. after a fresh service login.
func (s *MemorySession) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Logout clears the stored token.
func (s *MemorySession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Active reports whether a token is currently held.
func (s *MemorySession) Active() bool {
	return s.Token() != ""
}
