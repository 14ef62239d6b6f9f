package weather

import (
	"context"

	"github.com/maguitaria/upd-weather-app/internal/state"
)

// Provider abstracts a weekly forecast source (e.g. Open-Meteo, WeatherAPI).
// Implementations return Celsius values; Provider and FetchedAt are filled by
// the gateway.
type Provider interface {
	Name() string
	FetchWeek(ctx context.Context, lat, lon float64) (Week, error)
}

// Store keeps the latest fetched week.
type Store interface {
	SaveWeek(w Week)
	Latest() (Week, error)
	Subscribe(fn func(Week)) state.Subscription
}
