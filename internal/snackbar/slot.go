package snackbar

import (
	"sync"

	"github.com/jmylchreest/snackbars/internal/model"
)

// Slot holds the latest pending event, or nothing.
// It is written by the trigger and read by the driver.
type Slot struct {
	mu    sync.RWMutex
	event model.Event
	set   bool
}

// Set replaces the slot content with e.
func (s *Slot) Set(e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = e
	s.set = true
}

// Load returns the pending event and whether the slot holds one.
func (s *Slot) Load() (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.event, s.set
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = model.Event{}
	s.set = false
}
