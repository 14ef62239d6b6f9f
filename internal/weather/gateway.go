package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/state"
)

// ErrNoProviders is returned when the gateway has nothing to fetch from.
var ErrNoProviders = errors.New("no weather providers configured")

// Gateway fetches a week of weather for the current coordinates and saves it
// to the store. Providers are tried in order; the first success wins.
type Gateway struct {
	store     Store
	providers []Provider
	location  *state.LocationState
	now       func() time.Time
}

// NewGateway creates a new Gateway. loc may be nil when the gateway is only
// driven through FetchWeek.
func NewGateway(store Store, providers []Provider, loc *state.LocationState) *Gateway {
	return &Gateway{
		store:     store,
		providers: providers,
		location:  loc,
		now:       time.Now,
	}
}

// FetchWeek fetches and stores a week for the given coordinates. On failure
// the previously stored week stays in place.
func (g *Gateway) FetchWeek(ctx context.Context, lat, lon float64) (Week, error) {
	if len(g.providers) == 0 {
		log.Printf("ERROR: no providers available to fetch weather for %f,%f", lat, lon)
		return Week{}, ErrNoProviders
	}

	var errs []error
	for _, p := range g.providers {
		w, err := p.FetchWeek(ctx, lat, lon)
		if err == nil {
			err = w.Series.Validate()
		}
		if err != nil {
			log.Printf("provider %s week fetch failed for %f,%f: %v", p.Name(), lat, lon, err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		w.Latitude = lat
		w.Longitude = lon
		w.Provider = p.Name()
		w.FetchedAt = g.now().UTC()

		g.store.SaveWeek(w)
		log.Printf("DEBUG: stored week from %s for %f,%f (%d samples, %d days)", p.Name(), lat, lon, w.Series.Len(), len(w.Days))
		return w, nil
	}

	log.Printf("no successful provider responses for %f,%f; keeping previous week if any", lat, lon)
	return Week{}, fmt.Errorf("no weather data available: %w", errors.Join(errs...))
}

// Refresh refetches for the coordinates currently held in the location state.
// It is a no-op until coordinates are known.
func (g *Gateway) Refresh(ctx context.Context) error {
	if g.location == nil {
		return nil
	}
	lat, lon, ok := g.location.Get().Coordinates()
	if !ok {
		log.Println("INFO: refresh skipped; no coordinates resolved yet")
		return nil
	}
	_, err := g.FetchWeek(ctx, lat, lon)
	return err
}

// Observe starts a background fetch every time the location's coordinates
// change to a non-empty value. In-flight fetches are never cancelled, so the
// last one to finish decides what the store holds.
func (g *Gateway) Observe() state.Subscription {
	return g.location.Subscribe(func(c state.LocationChange) {
		if !c.CoordinatesChanged() {
			return
		}
		lat, lon, ok := c.Current.Coordinates()
		if !ok {
			return
		}
		go func() {
			if _, err := g.FetchWeek(context.Background(), lat, lon); err != nil {
				log.Printf("ERROR: weather fetch for %f,%f: %v", lat, lon, err)
			}
		}()
	})
}
