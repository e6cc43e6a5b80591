// Package annotations is a side table mapping a type identity to
// arbitrary metadata, orthogonal to dependency resolution. The scaffold
// uses it to attach validation rulesets to handler types; the store
// itself never interprets the values it holds.
package annotations

import "sync"

// Store maps type identities to attached values. Its lifecycle is
// independent of the container registry: create one with New at the
// composition root and pass it to whichever layer reads it.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// Attach stores value under identity. Unlike registry registration there
// is no uniqueness invariant: a second Attach for the same identity wins.
func (s *Store) Attach(identity string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[identity] = value
}

// Lookup returns the value attached to identity. The second result is
// false when nothing was attached — an explicit absent, never an error,
// since not every type carries metadata.
func (s *Store) Lookup(identity string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[identity]
	return v, ok
}

// LookupAs returns the value attached to identity typed as T.
// ok is false when nothing was attached or the value is not a T.
func LookupAs[T any](s *Store, identity string) (T, bool) {
	var zero T
	raw, ok := s.Lookup(identity)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
