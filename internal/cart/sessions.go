package cart

import "sync"

// Sessions maps shopper session IDs to their carts. Carts are created lazily
// on first access and live for as long as the process does.
type Sessions struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Get returns the cart for the given session, creating an empty one if none
// exists yet.
func (s *Sessions) Get(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Drop removes the cart for the given session, if any.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
