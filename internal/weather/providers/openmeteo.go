package providers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/maguitaria/upd-weather-app/internal/httpclient"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

// OpenMeteoProvider implements weather.Provider for Open-Meteo. No API key is needed.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(opts Options, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: opts.httpConfig(),
		circuit: httpclient.NewBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchWeek(ctx context.Context, lat, lon float64) (weather.Week, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("hourly", "temperature_2m")
	values.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(forecastDays))

	var payload struct {
		Timezone             string `json:"timezone"`
		TimezoneAbbreviation string `json:"timezone_abbreviation"`
		UTCOffsetSeconds     int    `json:"utc_offset_seconds"`
		Hourly               struct {
			Time          []string   `json:"time"`
			Temperature2m []*float64 `json:"temperature_2m"`
		} `json:"hourly"`
		Daily struct {
			Time             []string   `json:"time"`
			WeatherCode      []*int     `json:"weathercode"`
			Temperature2mMax []*float64 `json:"temperature_2m_max"`
			Temperature2mMin []*float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.Week{}, err
	}

	if len(payload.Hourly.Time) != len(payload.Hourly.Temperature2m) {
		return weather.Week{}, fmt.Errorf("openmeteo hourly arrays differ: %w", weather.ErrSeriesLength)
	}

	zone := zoneFor(payload.Timezone, payload.TimezoneAbbreviation, payload.UTCOffsetSeconds)

	var (
		stamps []time.Time
		temps  []float64
	)
	for i, raw := range payload.Hourly.Time {
		temp := payload.Hourly.Temperature2m[i]
		if temp == nil {
			continue
		}
		ts, err := time.ParseInLocation("2006-01-02T15:04", raw, zone)
		if err != nil {
			log.Printf("openmeteo: skipping hourly sample with bad time %q: %v", raw, err)
			continue
		}
		stamps = append(stamps, ts)
		temps = append(temps, *temp)
	}
	series, err := weather.NewTemperatureSeries(stamps, temps)
	if err != nil {
		return weather.Week{}, fmt.Errorf("openmeteo hourly series: %w", err)
	}

	d := payload.Daily
	days := make([]weather.DailySummary, 0, len(d.Time))
	for i, raw := range d.Time {
		if i >= len(d.Temperature2mMax) || i >= len(d.Temperature2mMin) {
			break
		}
		if d.Temperature2mMax[i] == nil || d.Temperature2mMin[i] == nil {
			continue
		}
		day, err := time.ParseInLocation("2006-01-02", raw, zone)
		if err != nil {
			log.Printf("openmeteo: skipping day with bad date %q: %v", raw, err)
			continue
		}

		code := -1
		if i < len(d.WeatherCode) && d.WeatherCode[i] != nil {
			code = *d.WeatherCode[i]
		}
		cond := mapOpenMeteoCondition(code)

		days = append(days, weather.DailySummary{
			Day:            day,
			MaxTemperature: *d.Temperature2mMax[i],
			MinTemperature: *d.Temperature2mMin[i],
			Condition:      cond,
			Icon:           cond.Icon(),
			Description:    describeWMOCode(code),
		})
	}

	return weather.Week{Series: series, Days: days}, nil
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// Mapping based on Open-Meteo weather codes (simplified).
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}

func describeWMOCode(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1:
		return "Mainly clear"
	case 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55:
		return "Drizzle"
	case 56, 57:
		return "Freezing drizzle"
	case 61, 63, 65:
		return "Rain"
	case 66, 67:
		return "Freezing rain"
	case 71, 73, 75:
		return "Snow fall"
	case 77:
		return "Snow grains"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95:
		return "Thunderstorm"
	case 96, 99:
		return "Thunderstorm with hail"
	default:
		return "Unknown"
	}
}

var _ weather.Provider = (*OpenMeteoProvider)(nil)
