package store

import (
	"errors"
	"sync"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

var (
	// ErrNotFound is returned while no week has been fetched yet.
	ErrNotFound = errors.New("no weather data fetched yet")
)

// MemoryStore is a concurrency-safe holder for the latest fetched week.
// Saving replaces the previous week; stored weeks are never modified.
type MemoryStore struct {
	mu     sync.RWMutex
	latest *weather.Week

	subs state.Listeners[weather.Week]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveWeek replaces the stored week and notifies subscribers.
func (s *MemoryStore) SaveWeek(w weather.Week) {
	w = cloneWeek(w)

	s.mu.Lock()
	s.latest = &w
	s.mu.Unlock()

	s.subs.Notify(cloneWeek(w))
}

// Latest returns a copy of the most recent week.
func (s *MemoryStore) Latest() (weather.Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return weather.Week{}, ErrNotFound
	}
	return cloneWeek(*s.latest), nil
}

func (s *MemoryStore) Subscribe(fn func(weather.Week)) state.Subscription {
	return s.subs.Add(fn)
}

func cloneWeek(w weather.Week) weather.Week {
	w.Series.Timestamps = append([]time.Time(nil), w.Series.Timestamps...)
	w.Series.Values = append([]float64(nil), w.Series.Values...)
	w.Days = append([]weather.DailySummary(nil), w.Days...)
	return w
}

var _ weather.Store = (*MemoryStore)(nil)
