package weather_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/store"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

type stubProvider struct {
	name string
	err  error

	mu    sync.Mutex
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) FetchWeek(ctx context.Context, lat, lon float64) (weather.Week, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.err != nil {
		return weather.Week{}, p.err
	}
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	return weather.Week{
		Series: weather.TemperatureSeries{
			Timestamps: []time.Time{base, base.Add(time.Hour)},
			Values:     []float64{lat, lon},
		},
		Days: []weather.DailySummary{{Day: base, MaxTemperature: 20, MinTemperature: 10}},
	}, nil
}

func (p *stubProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestFetchWeekFallsBackToNextProvider(t *testing.T) {
	mem := store.NewMemoryStore()
	bad := &stubProvider{name: "bad", err: errors.New("503")}
	good := &stubProvider{name: "good"}
	gw := weather.NewGateway(mem, []weather.Provider{bad, good}, nil)

	w, err := gw.FetchWeek(context.Background(), 1.5, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Provider != "good" || w.Latitude != 1.5 || w.Longitude != 2.5 {
		t.Fatalf("unexpected week %+v", w)
	}

	stored, err := mem.Latest()
	if err != nil || stored.Provider != "good" {
		t.Fatalf("week not stored: %+v %v", stored, err)
	}
}

func TestFailedFetchKeepsPreviousWeek(t *testing.T) {
	mem := store.NewMemoryStore()
	p := &stubProvider{name: "p"}
	gw := weather.NewGateway(mem, []weather.Provider{p}, nil)

	if _, err := gw.FetchWeek(context.Background(), 3, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.err = errors.New("down")
	if _, err := gw.FetchWeek(context.Background(), 7, 8); err == nil {
		t.Fatal("expected error")
	}

	stored, _ := mem.Latest()
	if stored.Latitude != 3 {
		t.Fatalf("expected stale week to remain, got latitude %v", stored.Latitude)
	}
	if p.Calls() != 2 {
		t.Fatalf("expected no retries, got %d calls", p.Calls())
	}
}

func TestFetchWeekWithoutProviders(t *testing.T) {
	gw := weather.NewGateway(store.NewMemoryStore(), nil, nil)
	if _, err := gw.FetchWeek(context.Background(), 0, 0); !errors.Is(err, weather.ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

type badSeriesProvider struct{}

func (badSeriesProvider) Name() string { return "bad-series" }

func (badSeriesProvider) FetchWeek(context.Context, float64, float64) (weather.Week, error) {
	return weather.Week{Series: weather.TemperatureSeries{Values: []float64{1}}}, nil
}

func TestFetchWeekRejectsMismatchedSeries(t *testing.T) {
	gw := weather.NewGateway(store.NewMemoryStore(), []weather.Provider{badSeriesProvider{}}, nil)
	_, err := gw.FetchWeek(context.Background(), 0, 0)
	if !errors.Is(err, weather.ErrSeriesLength) {
		t.Fatalf("expected ErrSeriesLength, got %v", err)
	}
}

func TestObserveFetchesOnCoordinateChange(t *testing.T) {
	mem := store.NewMemoryStore()
	loc := state.NewLocationState()
	p := &stubProvider{name: "p"}
	gw := weather.NewGateway(mem, []weather.Provider{p}, loc)
	gw.Observe()

	fetched := make(chan weather.Week, 4)
	mem.Subscribe(func(w weather.Week) { fetched <- w })

	// A place-name-only update must not trigger a fetch.
	loc.Update(func(prev state.ResolvedLocation) state.ResolvedLocation {
		prev.Town = "Nowhere"
		return prev
	})

	loc.Update(func(prev state.ResolvedLocation) state.ResolvedLocation {
		return prev.WithCoordinates(60, 25)
	})

	select {
	case w := <-fetched:
		if w.Latitude != 60 || w.Longitude != 25 {
			t.Fatalf("unexpected coordinates %v,%v", w.Latitude, w.Longitude)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
	}

	if p.Calls() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", p.Calls())
	}
}

func TestRefreshWithoutCoordinatesIsNoop(t *testing.T) {
	p := &stubProvider{name: "p"}
	gw := weather.NewGateway(store.NewMemoryStore(), []weather.Provider{p}, state.NewLocationState())

	if err := gw.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Calls() != 0 {
		t.Fatalf("expected no fetch, got %d", p.Calls())
	}
}
