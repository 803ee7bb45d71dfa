// Package store holds the normalized events per category once loading has
// finished. Replacement is atomic per category: readers see either the old
// list or the new one, never a partial list.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/scale"
)

// Store is a thread-safe map from category to its loaded events.
// The zero value is ready to use.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.Category]*entry
	failed  map[domain.Category][]string
}

type entry struct {
	events   []domain.Event
	fit      scale.Fit
	loadedAt time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Put replaces the events and fit of category c. The slice is owned by the
// store afterwards; callers must not modify it. A successful Put clears any
// earlier failure recorded for c.
func (s *Store) Put(c domain.Category, events []domain.Event, fit scale.Fit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[domain.Category]*entry)
	}
	s.entries[c] = &entry{events: events, fit: fit, loadedAt: domain.Now()}
	delete(s.failed, c)
}

// Events returns the events of category c in load order. ok is false until
// the category has been stored.
func (s *Store) Events(c domain.Category) ([]domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[c]
	if !ok {
		return nil, false
	}
	return e.events, true
}

// Fit returns the scale fit recorded for category c.
func (s *Store) Fit(c domain.Category) (scale.Fit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[c]
	if !ok {
		return scale.Fit{}, false
	}
	return e.fit, true
}

// LoadedAt returns when category c was stored.
func (s *Store) LoadedAt(c domain.Category) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[c]
	if !ok {
		return time.Time{}, false
	}
	return e.loadedAt, true
}

// Available reports whether category c has been stored.
func (s *Store) Available(c domain.Category) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[c]
	return ok
}

// Categories returns the stored categories in enum order.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Category
	for _, c := range domain.Categories() {
		if _, ok := s.entries[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// MarkFailed records that category c could not be loaded because of files.
// A failed category stays unavailable.
func (s *Store) MarkFailed(c domain.Category, files ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed == nil {
		s.failed = make(map[domain.Category][]string)
	}
	s.failed[c] = append(s.failed[c], files...)
}

// Failed returns the failed files per category.
func (s *Store) Failed() map[domain.Category][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.Category][]string, len(s.failed))
	for c, files := range s.failed {
		out[c] = slices.Clone(files)
	}
	return out
}

// Len returns the total number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		n += len(e.events)
	}
	return n
}

// All returns every stored event, categories in enum order.
func (s *Store) All() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Event
	for _, c := range domain.Categories() {
		if e, ok := s.entries[c]; ok {
			out = append(out, e.events...)
		}
	}
	return out
}

// CategoryStatus summarizes the load state of one category.
type CategoryStatus struct {
	Category    domain.Category `json:"category"`
	Available   bool            `json:"available"`
	Events      int             `json:"events"`
	Fit         *scale.Fit      `json:"fit,omitempty"`
	LoadedAt    *time.Time      `json:"loaded_at,omitempty"`
	FailedFiles []string        `json:"failed_files,omitempty"`
}

// Status reports every category in enum order, including those not loaded yet.
func (s *Store) Status() []CategoryStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CategoryStatus, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		st := CategoryStatus{Category: c, FailedFiles: slices.Clone(s.failed[c])}
		if e, ok := s.entries[c]; ok {
			fit, loadedAt := e.fit, e.loadedAt
			st.Available = true
			st.Events = len(e.events)
			st.Fit = &fit
			st.LoadedAt = &loadedAt
		}
		out = append(out, st)
	}
	return out
}
