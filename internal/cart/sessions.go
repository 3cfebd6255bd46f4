package cart

import (
	"sync"
	"time"
)

type sessionEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// Sessions owns one Cart per storefront session. Carts live only in memory and are
// discarded once a session has been idle longer than the configured TTL.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	idleTTL time.Duration
	now     func() time.Time
}

// NewSessions builds an empty registry. A non-positive idleTTL disables sweeping.
func NewSessions(idleTTL time.Duration) *Sessions {
	return &Sessions{
		entries: map[string]*sessionEntry{},
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the session's cart, creating an empty one on first access.
func (s *Sessions) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		entry = &sessionEntry{cart: New()}
		s.entries[sessionID] = entry
	}
	entry.lastSeen = s.now()
	return entry.cart
}

// Lookup returns the session's cart without creating one.
func (s *Sessions) Lookup(sessionID string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.cart, true
}

// Drop discards the session's cart.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
}

// Sweep discards carts idle since before now minus the TTL and returns how many were dropped.
func (s *Sessions) Sweep(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len is the number of live session carts.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
