package dashboard

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/location"
	"github.com/maguitaria/upd-weather-app/internal/present"
	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/store"
	"github.com/maguitaria/upd-weather-app/internal/units"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

// View is everything the front end renders.
type View struct {
	Location state.ResolvedLocation `json:"location"`
	Label    string                 `json:"label"`
	Error    string                 `json:"error,omitempty"`
	Unit     units.Unit             `json:"unit"`

	// Loading is true until the first week has been fetched. After that a
	// failed refetch keeps showing the previous week.
	Loading bool                `json:"loading"`
	Chart   *present.Chart      `json:"chart"`
	Cards   []present.FlashCard `json:"cards"`

	ComputedAt time.Time `json:"computedAt"`
}

// Dashboard recomputes the view whenever the location, the unit preference
// or the stored week changes.
type Dashboard struct {
	location *state.LocationState
	unit     *state.UnitState
	weeks    weather.Store
	now      func() time.Time

	// compute is held from reading the inputs until the view is stored, so a
	// slower recompute over older inputs never replaces a newer view.
	compute sync.Mutex

	mu   sync.RWMutex
	view View
}

func New(loc *state.LocationState, unit *state.UnitState, weeks weather.Store) *Dashboard {
	return newWithClock(loc, unit, weeks, time.Now)
}

func newWithClock(loc *state.LocationState, unit *state.UnitState, weeks weather.Store, now func() time.Time) *Dashboard {
	d := &Dashboard{
		location: loc,
		unit:     unit,
		weeks:    weeks,
		now:      now,
	}

	loc.Subscribe(func(state.LocationChange) { d.recompute() })
	unit.Subscribe(func(units.Unit) { d.recompute() })
	weeks.Subscribe(func(weather.Week) { d.recompute() })

	d.recompute()
	return d
}

// View returns the current view. Flash card labels depend on today's date,
// so the view is also recomputed once the local date has moved on.
func (d *Dashboard) View() View {
	d.mu.RLock()
	v := d.view
	d.mu.RUnlock()

	if !sameDay(v.ComputedAt, d.now()) {
		return d.recompute()
	}
	return v
}

func (d *Dashboard) recompute() View {
	d.compute.Lock()
	defer d.compute.Unlock()

	now := d.now()
	loc := d.location.Get()
	unit := d.unit.Get()

	v := View{
		Location:   loc,
		Label:      location.Label(loc),
		Error:      d.location.Error(),
		Unit:       unit,
		Loading:    true,
		Cards:      []present.FlashCard{},
		ComputedAt: now,
	}

	week, err := d.weeks.Latest()
	switch {
	case err == nil:
		chart := present.BuildChart(week, unit, loc)
		v.Chart = &chart
		v.Cards = present.BuildFlashCards(week.Days, unit, now)
		v.Loading = false
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Printf("ERROR: reading latest week: %v", err)
	}

	d.mu.Lock()
	d.view = v
	d.mu.Unlock()
	return v
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
