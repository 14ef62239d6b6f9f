package state

import (
	"errors"
	"sync"
)

// ErrPartialCoordinates is returned when an update would leave exactly one coordinate set.
var ErrPartialCoordinates = errors.New("latitude and longitude must both be set or both be unset")

// ResolvedLocation is the currently selected place. Latitude and Longitude are
// either both nil or both set.
type ResolvedLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Town      string   `json:"town"`
	County    string   `json:"county"`
	Country   string   `json:"country"`
}

// HasCoordinates reports whether both coordinates are set.
func (l ResolvedLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Coordinates returns the coordinates and whether they are set.
func (l ResolvedLocation) Coordinates() (lat, lon float64, ok bool) {
	if !l.HasCoordinates() {
		return 0, 0, false
	}
	return *l.Latitude, *l.Longitude, true
}

// SameCoordinates compares coordinates by value.
func (l ResolvedLocation) SameCoordinates(o ResolvedLocation) bool {
	lat1, lon1, ok1 := l.Coordinates()
	lat2, lon2, ok2 := o.Coordinates()
	if ok1 != ok2 {
		return false
	}
	return lat1 == lat2 && lon1 == lon2
}

// WithCoordinates returns a copy with the given coordinates set.
func (l ResolvedLocation) WithCoordinates(lat, lon float64) ResolvedLocation {
	l.Latitude = &lat
	l.Longitude = &lon
	return l
}

func (l ResolvedLocation) clone() ResolvedLocation {
	if l.Latitude != nil {
		lat := *l.Latitude
		l.Latitude = &lat
	}
	if l.Longitude != nil {
		lon := *l.Longitude
		l.Longitude = &lon
	}
	return l
}

// LocationChange is delivered to location subscribers.
type LocationChange struct {
	Previous ResolvedLocation
	Current  ResolvedLocation
	Err      string
}

// CoordinatesChanged reports whether the update moved the coordinates.
func (c LocationChange) CoordinatesChanged() bool {
	return !c.Previous.SameCoordinates(c.Current)
}

// LocationState owns the resolved location and the last user-visible location error.
// Writes are serialized together with their notifications, so subscribers see
// changes in the order they were stored.
type LocationState struct {
	write sync.Mutex

	mu       sync.RWMutex
	location ResolvedLocation
	err      string

	subs Listeners[LocationChange]
}

// NewLocationState returns a state with no coordinates and empty place names.
func NewLocationState() *LocationState {
	return &LocationState{}
}

// Get returns a copy of the current location.
func (s *LocationState) Get() ResolvedLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location.clone()
}

// Error returns the last recorded location error, if any.
func (s *LocationState) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Update applies fn to a copy of the current location and stores the result.
// The update is rejected when it would break the coordinate invariant.
// Subscribers must not write to the same state synchronously.
func (s *LocationState) Update(fn func(prev ResolvedLocation) ResolvedLocation) (ResolvedLocation, error) {
	s.write.Lock()
	defer s.write.Unlock()

	s.mu.Lock()
	prev := s.location.clone()
	next := fn(s.location.clone())
	if (next.Latitude == nil) != (next.Longitude == nil) {
		s.mu.Unlock()
		return prev, ErrPartialCoordinates
	}
	s.location = next.clone()
	change := LocationChange{Previous: prev, Current: next.clone(), Err: s.err}
	s.mu.Unlock()

	s.subs.Notify(change)
	return next, nil
}

// SetError records a user-visible error message. An empty message clears it.
func (s *LocationState) SetError(msg string) {
	s.write.Lock()
	defer s.write.Unlock()

	s.mu.Lock()
	if s.err == msg {
		s.mu.Unlock()
		return
	}
	s.err = msg
	loc := s.location.clone()
	s.mu.Unlock()

	s.subs.Notify(LocationChange{Previous: loc, Current: loc, Err: msg})
}

// Subscribe registers fn to be called after every update.
func (s *LocationState) Subscribe(fn func(LocationChange)) Subscription {
	return s.subs.Add(fn)
}

// Unsubscribe removes a listener; it reports whether one was found.
func (s *LocationState) Unsubscribe(id Subscription) bool {
	return s.subs.Remove(id)
}
