package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/maguitaria/upd-weather-app/internal/httpclient"
)

// forecastDays is the number of days requested from every provider.
const forecastDays = 7

// Options configures the HTTP behaviour shared by all providers.
type Options struct {
	Client *http.Client

	// MaxRetries of zero means every failure is final.
	MaxRetries int
}

func (o Options) httpConfig() httpclient.Config {
	return httpclient.Config{
		Client: o.Client,
		Backoff: httpclient.BackoffConfig{
			MaxRetries:      o.MaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
	}
}

// getJSON performs a GET through the resilience wrapper and decodes the body into out.
func getJSON(ctx context.Context, cfg httpclient.Config, cb *gobreaker.CircuitBreaker, u string, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpclient.Do(ctx, cfg, cb, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// zoneFor resolves an IANA zone name, falling back to a fixed offset.
func zoneFor(name, abbr string, offsetSeconds int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if abbr == "" {
		abbr = name
	}
	return time.FixedZone(abbr, offsetSeconds)
}
