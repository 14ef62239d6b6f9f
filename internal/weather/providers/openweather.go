package providers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/maguitaria/upd-weather-app/internal/httpclient"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

// OpenWeatherProvider implements weather.Provider for the OpenWeatherMap
// 5 day / 3 hour forecast. Daily summaries are derived from the 3-hourly
// samples, so this provider covers five or six days rather than seven.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(opts Options, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: opts.httpConfig(),
		circuit: httpclient.NewBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) FetchWeek(ctx context.Context, lat, lon float64) (weather.Week, error) {
	if p.apiKey == "" {
		return weather.Week{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []owmWeather `json:"weather"`
		} `json:"list"`
		City struct {
			Timezone int `json:"timezone"`
		} `json:"city"`
	}

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.Week{}, err
	}

	zone := time.FixedZone("", payload.City.Timezone)

	samples := make([]weather.Sample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.Sample{
			Time:         time.Unix(item.Dt, 0).In(zone),
			TemperatureC: item.Main.Temp,
			Condition:    mapOpenWeatherCondition(item.Weather),
		}
		if len(item.Weather) > 0 {
			s.Description = item.Weather[0].Description
			if item.Weather[0].Icon != "" {
				s.Icon = fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", item.Weather[0].Icon)
			}
		}
		samples = append(samples, s)
	}

	return weather.Week{
		Series: weather.SeriesFromSamples(samples),
		Days:   weather.SummarizeDays(samples),
	}, nil
}

type owmWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func mapOpenWeatherCondition(items []owmWeather) weather.Condition {
	if len(items) == 0 {
		return weather.ConditionUnknown
	}
	switch items[0].Main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionCloudy
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm":
		return weather.ConditionStorm
	case "Mist", "Fog", "Haze":
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)
