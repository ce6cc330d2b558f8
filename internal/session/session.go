// Package session holds the authenticated identity for the lifetime of the
// process. The signup flow commits the username exactly once, on its first
// successful registration; the rest of the application reads it from here.
package session

import "sync"

// Store is the capability the signup flow writes its identity through.
// Commit never fails from the caller's perspective.
type Store interface {
	Commit(username string)
	Current() (string, bool)
}

// Memory is a mutex-guarded in-memory Store. The at-most-once write property
// comes from the flow having a single commit site, not from the store: a
// later Commit simply wins.
type Memory struct {
	mu       sync.RWMutex
	username string
	set      bool
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{}
}

// Commit records the authenticated username.
func (m *Memory) Commit(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = username
	m.set = true
}

// Current returns the committed username and whether one has been committed.
func (m *Memory) Current() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username, m.set
}
