package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/maguitaria/upd-weather-app/internal/location"
	"github.com/maguitaria/upd-weather-app/internal/units"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// HTTPTimeout bounds every outbound call; zero means no timeout.
	HTTPTimeout time.Duration `validate:"gte=0"`

	GeocodeBaseURL string  `validate:"omitempty,url"`
	GeocodeAPIKey  string
	GeocodeRPS     float64 `validate:"gte=0"`

	// GoogleGeocoderAPIKey switches geocoding to Google when set.
	GoogleGeocoderAPIKey string

	OpenMeteoBaseURL  string `validate:"omitempty,url"`
	WeatherAPIKey     string
	OpenWeatherAPIKey string

	// WeatherProviders lists providers in the order they are tried.
	WeatherProviders  []string `validate:"min=1,dive,oneof=openmeteo weatherapi openweather"`
	WeatherMaxRetries int      `validate:"gte=0,lte=10"`

	// RefreshInterval controls the periodic refetch; zero disables it.
	RefreshInterval time.Duration `validate:"gte=0"`

	DefaultUnit units.Unit `validate:"oneof=Celsius Fahrenheit"`

	// DeviceLatitude/DeviceLongitude configure the host's own position.
	DeviceLatitude  *float64 `validate:"omitempty,gte=-90,lte=90"`
	DeviceLongitude *float64 `validate:"omitempty,gte=-180,lte=180"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "0s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.GeocodeBaseURL = os.Getenv("GEOCODE_BASE_URL")
	cfg.GeocodeAPIKey = os.Getenv("GEOCODE_API_KEY")
	cfg.GeocodeRPS = getenvFloat("GEOCODE_RPS", 1)
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	cfg.OpenMeteoBaseURL = os.Getenv("OPENMETEO_BASE_URL")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherProviders = splitList(getenvDefault("WEATHER_PROVIDERS", "openmeteo,weatherapi,openweather"))
	cfg.WeatherMaxRetries = getenvInt("WEATHER_MAX_RETRIES", 0)

	interval, err := getenvDuration("REFRESH_INTERVAL", "30m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	unit, err := units.ParseUnit(getenvDefault("DEFAULT_UNIT", string(units.Celsius)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNIT: %w", err)
	}
	cfg.DefaultUnit = unit

	if cfg.DeviceLatitude, err = getenvOptionalFloat("DEVICE_LATITUDE"); err != nil {
		return nil, err
	}
	if cfg.DeviceLongitude, err = getenvOptionalFloat("DEVICE_LONGITUDE"); err != nil {
		return nil, err
	}

	if (cfg.DeviceLatitude == nil) != (cfg.DeviceLongitude == nil) {
		return nil, fmt.Errorf("DEVICE_LATITUDE and DEVICE_LONGITUDE must be set together")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DevicePositioner returns the configured host position, or a positioner
// that reports geolocation as unsupported.
func (c *AppConfig) DevicePositioner() location.Positioner {
	if c.DeviceLatitude == nil || c.DeviceLongitude == nil {
		return location.UnsupportedPositioner{}
	}
	return location.StaticPositioner{Position: location.Position{
		Latitude:  *c.DeviceLatitude,
		Longitude: *c.DeviceLongitude,
	}}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvOptionalFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
