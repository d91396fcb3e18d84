// Package session keeps each user's selected location for the lifetime of the process.
package session

import "sync"

type entry struct {
	mu       sync.Mutex
	location string
}

// Store maps user -> selected district. Nothing is persisted; a restart clears it.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

// entry returns the user's slot, creating it on first reference. The map lock is
// only held while resolving the slot, so different users never wait on each other
// beyond that.
func (s *Store) entry(userID int64) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; !ok {
		e = &entry{}
		s.entries[userID] = e
	}
	return e
}

// Location returns the user's selected location, or false if none was chosen yet.
func (s *Store) Location(userID int64) (string, bool) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location, e.location != ""
}

// SetLocation records the user's selection; the last write wins.
func (s *Store) SetLocation(userID int64, location string) {
	e := s.entry(userID)
	e.mu.Lock()
	e.location = location
	e.mu.Unlock()
}

// Len returns the number of users seen since startup.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
