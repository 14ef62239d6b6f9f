package location

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/maguitaria/upd-weather-app/internal/state"
)

// ErrLocationNotFound is returned when a search yields no usable candidate.
var ErrLocationNotFound = errors.New("location not found")

// Resolver turns search terms and device positions into the shared LocationState.
// Overlapping calls are not coordinated: the last one to complete wins.
type Resolver struct {
	geocoder Geocoder
	state    *state.LocationState
}

func NewResolver(geocoder Geocoder, st *state.LocationState) *Resolver {
	return &Resolver{geocoder: geocoder, state: st}
}

// SearchByName geocodes text and moves the state to the most relevant
// candidate, then fills in the place names by reverse geocoding. On failure
// the state is left untouched and the error is only informational: callers
// that just render the shared state may ignore it.
func (r *Resolver) SearchByName(ctx context.Context, text string) (state.ResolvedLocation, error) {
	candidates, err := r.geocoder.Search(ctx, text)
	if err != nil {
		log.Printf("ERROR: location search for %q via %s failed: %v", text, r.geocoder.Name(), err)
		return r.state.Get(), fmt.Errorf("search %q: %w", text, err)
	}

	best, ok := SelectMostRelevant(candidates)
	if !ok {
		log.Printf("INFO: location search for %q: %v", text, ErrLocationNotFound)
		return r.state.Get(), ErrLocationNotFound
	}
	log.Printf("DEBUG: location search for %q selected %q (importance %.3f)", text, best.DisplayName, best.Importance)

	if _, err := r.setCoordinates(best.Latitude, best.Longitude); err != nil {
		return r.state.Get(), err
	}
	return r.ReverseResolve(ctx, best.Latitude, best.Longitude), nil
}

// ResolveFromCoordinates asks the device for its position. A failure is
// recorded as the user-visible location error and returned; the previous
// location is kept.
func (r *Resolver) ResolveFromCoordinates(ctx context.Context, p Positioner) (state.ResolvedLocation, error) {
	if p == nil {
		p = UnsupportedPositioner{}
	}

	pos, err := p.CurrentPosition(ctx)
	if err != nil {
		r.state.SetError(err.Error())
		return r.state.Get(), err
	}

	if _, err := r.setCoordinates(pos.Latitude, pos.Longitude); err != nil {
		return r.state.Get(), err
	}
	r.state.SetError("")

	return r.ReverseResolve(ctx, pos.Latitude, pos.Longitude), nil
}

// ReverseResolve fills town, county and country from the reverse geocoder.
// County and country are always replaced; town only when the response names
// one. Errors are logged and the previous location is returned unchanged.
func (r *Resolver) ReverseResolve(ctx context.Context, lat, lon float64) state.ResolvedLocation {
	addr, err := r.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		log.Printf("ERROR: reverse geocoding %f,%f via %s failed: %v", lat, lon, r.geocoder.Name(), err)
		return r.state.Get()
	}

	town := firstNonEmpty(addr.Town, addr.City)
	county := firstNonEmpty(addr.Municipality, addr.County, addr.State)
	country := addr.Country

	if town == "" {
		log.Printf("INFO: no town found for %f,%f", lat, lon)
	}

	loc, _ := r.state.Update(func(prev state.ResolvedLocation) state.ResolvedLocation {
		if town != "" {
			prev.Town = town
		}
		prev.County = county
		prev.Country = country
		return prev
	})
	return loc
}

func (r *Resolver) setCoordinates(lat, lon float64) (state.ResolvedLocation, error) {
	return r.state.Update(func(prev state.ResolvedLocation) state.ResolvedLocation {
		return prev.WithCoordinates(lat, lon)
	})
}
