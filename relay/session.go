package relay

import "sync"

// Session holds the session id issued by the server on initialize.
type Session struct {
	mu sync.RWMutex
	id string
}

// ID returns the session id and whether one was issued.
func (s *Session) ID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.id != ""
}

// Set stores the session id; empty ids are ignored so a session is never cleared.
func (s *Session) Set(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}
