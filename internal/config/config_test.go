package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/location"
	"github.com/maguitaria/upd-weather-app/internal/units"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "HTTP_TIMEOUT", "REFRESH_INTERVAL", "DEFAULT_UNIT", "WEATHER_PROVIDERS", "DEVICE_LATITUDE", "DEVICE_LONGITUDE", "GEOCODE_RPS", "WEATHER_MAX_RETRIES"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.HTTPTimeout != 0 || cfg.RefreshInterval != 30*time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.DefaultUnit != units.Celsius || cfg.GeocodeRPS != 1 || cfg.WeatherMaxRetries != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.WeatherProviders) != 3 || cfg.WeatherProviders[0] != "openmeteo" {
		t.Fatalf("unexpected providers %v", cfg.WeatherProviders)
	}

	_, err = cfg.DevicePositioner().CurrentPosition(context.Background())
	if !errors.Is(err, location.ErrGeolocationUnsupported) {
		t.Fatalf("expected unsupported geolocation, got %v", err)
	}
}

func TestLoadDevicePosition(t *testing.T) {
	t.Setenv("DEVICE_LATITUDE", "65.01")
	t.Setenv("DEVICE_LONGITUDE", "25.47")
	t.Setenv("DEFAULT_UNIT", "f")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultUnit != units.Fahrenheit {
		t.Fatalf("unexpected unit %s", cfg.DefaultUnit)
	}
	pos, err := cfg.DevicePositioner().CurrentPosition(context.Background())
	if err != nil || pos.Latitude != 65.01 || pos.Longitude != 25.47 {
		t.Fatalf("unexpected position %+v, %v", pos, err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"latitude out of range": {"DEVICE_LATITUDE": "123", "DEVICE_LONGITUDE": "10"},
		"half a position":       {"DEVICE_LATITUDE": "45"},
		"unknown provider":      {"WEATHER_PROVIDERS": "darksky"},
		"bad interval":          {"REFRESH_INTERVAL": "soon"},
		"bad unit":              {"DEFAULT_UNIT": "kelvin"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"DEVICE_LATITUDE", "DEVICE_LONGITUDE", "WEATHER_PROVIDERS", "REFRESH_INTERVAL", "DEFAULT_UNIT"} {
				t.Setenv(k, "")
			}
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
