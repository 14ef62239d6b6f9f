package state

import (
	"sync"

	"github.com/maguitaria/upd-weather-app/internal/units"
)

// UnitState holds the user's selected display unit.
type UnitState struct {
	write sync.Mutex

	mu   sync.RWMutex
	unit units.Unit

	subs Listeners[units.Unit]
}

// NewUnitState returns a state set to initial, or Celsius when initial is empty.
func NewUnitState(initial units.Unit) *UnitState {
	if initial == "" {
		initial = units.Celsius
	}
	return &UnitState{unit: initial}
}

func (s *UnitState) Get() units.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unit
}

// Set stores u and notifies subscribers when it differs from the current unit.
func (s *UnitState) Set(u units.Unit) {
	s.write.Lock()
	defer s.write.Unlock()

	s.mu.Lock()
	if s.unit == u {
		s.mu.Unlock()
		return
	}
	s.unit = u
	s.mu.Unlock()

	s.subs.Notify(u)
}

func (s *UnitState) Subscribe(fn func(units.Unit)) Subscription {
	return s.subs.Add(fn)
}

func (s *UnitState) Unsubscribe(id Subscription) bool {
	return s.subs.Remove(id)
}
