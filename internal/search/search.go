// Package search holds the free-text term shared between the header input and
// the product listing.
package search

import "sync"

// Store keeps the current search word. Screens read it on mount and query
// with it; the header writes it on every keystroke.
type Store struct {
	mu   sync.Mutex
	word string
}

// New constructs an empty search store.
func New() *Store { return &Store{} }

// Word returns the current term.
func (s *Store) Word() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.word
}

// SetWord replaces the current term.
func (s *Store) SetWord(w string) {
	s.mu.Lock()
	s.word = w
	s.mu.Unlock()
}
