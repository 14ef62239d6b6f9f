package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/maguitaria/upd-weather-app/internal/api/http"
	"github.com/maguitaria/upd-weather-app/internal/config"
	"github.com/maguitaria/upd-weather-app/internal/dashboard"
	"github.com/maguitaria/upd-weather-app/internal/location"
	"github.com/maguitaria/upd-weather-app/internal/location/geocoders"
	"github.com/maguitaria/upd-weather-app/internal/scheduler"
	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/store"
	"github.com/maguitaria/upd-weather-app/internal/weather"
	"github.com/maguitaria/upd-weather-app/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls. A zero timeout means none.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var geo location.Geocoder
	if cfg.GoogleGeocoderAPIKey != "" {
		geo = geocoders.NewGoogle(cfg.GoogleGeocoderAPIKey)
	} else {
		geo = geocoders.NewMapsCo(httpClient, cfg.GeocodeBaseURL, cfg.GeocodeAPIKey, cfg.GeocodeRPS)
	}
	log.Printf("INFO: using geocoder %s", geo.Name())

	locState := state.NewLocationState()
	unitState := state.NewUnitState(cfg.DefaultUnit)
	weeks := store.NewMemoryStore()

	gateway := weather.NewGateway(weeks, buildProviders(cfg, httpClient), locState)
	gateway.Observe()

	resolver := location.NewResolver(geo, locState)
	dash := dashboard.New(locState, unitState, weeks)
	device := cfg.DevicePositioner()

	// Use the host position as the starting location when one is configured.
	if cfg.DeviceLatitude != nil {
		go func() {
			if _, err := resolver.ResolveFromCoordinates(context.Background(), device); err != nil {
				log.Printf("ERROR: resolving device position: %v", err)
			}
		}()
	}

	sched := scheduler.New(cfg.RefreshInterval, gateway)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Dashboard: dash,
		Resolver:  resolver,
		Location:  locState,
		Units:     unitState,
		Device:    device,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func buildProviders(cfg *config.AppConfig, client *http.Client) []weather.Provider {
	opts := providers.Options{Client: client, MaxRetries: cfg.WeatherMaxRetries}

	var provs []weather.Provider
	for _, name := range cfg.WeatherProviders {
		switch name {
		case "openmeteo":
			provs = append(provs, providers.NewOpenMeteoProvider(opts, cfg.OpenMeteoBaseURL))
		case "weatherapi":
			if cfg.WeatherAPIKey == "" {
				log.Println("INFO: WEATHERAPI_API_KEY not set; skipping weatherapi provider")
				continue
			}
			provs = append(provs, providers.NewWeatherAPIProvider(opts, cfg.WeatherAPIKey))
		case "openweather":
			if cfg.OpenWeatherAPIKey == "" {
				log.Println("INFO: OPENWEATHER_API_KEY not set; skipping openweather provider")
				continue
			}
			provs = append(provs, providers.NewOpenWeatherProvider(opts, cfg.OpenWeatherAPIKey))
		}
	}
	return provs
}
