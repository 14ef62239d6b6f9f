package providers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/maguitaria/upd-weather-app/internal/httpclient"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(opts Options, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: opts.httpConfig(),
		circuit: httpclient.NewBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchWeek(ctx context.Context, lat, lon float64) (weather.Week, error) {
	if p.apiKey == "" {
		return weather.Week{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", formatCoord(lat)+","+formatCoord(lon))
	values.Set("days", strconv.Itoa(forecastDays))

	var payload struct {
		Location struct {
			TzID string `json:"tz_id"`
		} `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC  float64 `json:"maxtemp_c"`
					MinTempC  float64 `json:"mintemp_c"`
					Condition struct {
						Text string `json:"text"`
						Icon string `json:"icon"`
					} `json:"condition"`
				} `json:"day"`
				Hour []struct {
					TimeEpoch int64   `json:"time_epoch"`
					TempC     float64 `json:"temp_c"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.Week{}, err
	}

	zone := zoneFor(payload.Location.TzID, "", 0)

	type hourly struct {
		ts   time.Time
		temp float64
	}
	var hours []hourly
	days := make([]weather.DailySummary, 0, len(payload.Forecast.ForecastDay))

	for _, fd := range payload.Forecast.ForecastDay {
		for _, h := range fd.Hour {
			hours = append(hours, hourly{ts: time.Unix(h.TimeEpoch, 0).In(zone), temp: h.TempC})
		}

		day, err := time.ParseInLocation("2006-01-02", fd.Date, zone)
		if err != nil {
			log.Printf("weatherapi: skipping day with bad date %q: %v", fd.Date, err)
			continue
		}

		text := fd.Day.Condition.Text
		cond := mapWeatherAPICondition(text)
		icon := fd.Day.Condition.Icon
		if strings.HasPrefix(icon, "//") {
			icon = "https:" + icon
		}
		if icon == "" {
			icon = cond.Icon()
		}

		days = append(days, weather.DailySummary{
			Day:            day,
			MaxTemperature: fd.Day.MaxTempC,
			MinTemperature: fd.Day.MinTempC,
			Condition:      cond,
			Icon:           icon,
			Description:    text,
		})
	}

	sort.SliceStable(hours, func(i, j int) bool { return hours[i].ts.Before(hours[j].ts) })
	stamps := make([]time.Time, 0, len(hours))
	temps := make([]float64, 0, len(hours))
	for _, h := range hours {
		stamps = append(stamps, h.ts)
		temps = append(temps, h.temp)
	}
	series, err := weather.NewTemperatureSeries(stamps, temps)
	if err != nil {
		return weather.Week{}, fmt.Errorf("weatherapi hourly series: %w", err)
	}

	return weather.Week{Series: series, Days: days}, nil
}

func mapWeatherAPICondition(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionUnknown
	case contains(text, "thunder") || contains(text, "storm"):
		return weather.ConditionStorm
	case contains(text, "rain") || contains(text, "shower") || contains(text, "drizzle"):
		return weather.ConditionRain
	case contains(text, "snow") || contains(text, "sleet") || contains(text, "blizzard") || contains(text, "ice pellets"):
		return weather.ConditionSnow
	case contains(text, "mist") || contains(text, "fog"):
		return weather.ConditionMist
	case contains(text, "cloud") || contains(text, "overcast"):
		return weather.ConditionCloudy
	case contains(text, "sunny") || contains(text, "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

var _ weather.Provider = (*WeatherAPIProvider)(nil)
