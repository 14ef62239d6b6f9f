package geocoders

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/maguitaria/upd-weather-app/internal/httpclient"
	"github.com/maguitaria/upd-weather-app/internal/location"
)

// Google implements location.Geocoder with the Google Geocoding API.
// The underlying client keeps its key in a package variable and does not
// take a context, so a cancelled ctx is only honoured before the call.
type Google struct {
	circuit *gobreaker.CircuitBreaker

	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

func NewGoogle(apiKey string) *Google {
	geocoder.ApiKey = apiKey
	return &Google{
		circuit: httpclient.NewBreaker("google-geocoder"),
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

func (g *Google) Name() string {
	return "google"
}

// Search returns at most one candidate; Google ranks internally, so the match
// is given full importance.
func (g *Google) Search(ctx context.Context, text string) ([]location.GeocodeCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := g.circuit.Execute(func() (interface{}, error) {
		return g.geocode(geocoder.Address{City: text})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", httpclient.ErrCircuitOpen, err)
		}
		return nil, fmt.Errorf("google geocoding: %w", err)
	}

	loc := res.(geocoder.Location)
	return []location.GeocodeCandidate{{
		Importance:  1,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		DisplayName: text,
	}}, nil
}

func (g *Google) Reverse(ctx context.Context, lat, lon float64) (location.Address, error) {
	if err := ctx.Err(); err != nil {
		return location.Address{}, err
	}

	res, err := g.circuit.Execute(func() (interface{}, error) {
		return g.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
	})
	if err != nil {
		return location.Address{}, err
	}

	addrs := res.([]geocoder.Address)
	if len(addrs) == 0 {
		return location.Address{}, fmt.Errorf("reverse geocoding: no address for %f,%f", lat, lon)
	}

	a := addrs[0]
	return location.Address{
		City:    a.City,
		County:  a.County,
		State:   a.State,
		Country: a.Country,
	}, nil
}

var _ location.Geocoder = (*Google)(nil)
