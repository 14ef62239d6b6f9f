package geocoders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/maguitaria/upd-weather-app/internal/httpclient"
	"github.com/maguitaria/upd-weather-app/internal/location"
)

const defaultMapsCoURL = "https://geocode.maps.co"

// MapsCo implements location.Geocoder against geocode.maps.co.
type MapsCo struct {
	name    string
	baseURL string
	apiKey  string
	httpCfg httpclient.Config
	circuit *gobreaker.CircuitBreaker
}

// NewMapsCo builds the geocoder. rps limits outbound calls; the free tier
// allows one request per second. An empty baseURL uses the public service.
func NewMapsCo(client *http.Client, baseURL, apiKey string, rps float64) *MapsCo {
	if baseURL == "" {
		baseURL = defaultMapsCoURL
	}
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &MapsCo{
		name:    "geocode.maps.co",
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpCfg: httpclient.Config{
			Client:  client,
			Limiter: limiter,
		},
		circuit: httpclient.NewBreaker("mapsco"),
	}
}

func (g *MapsCo) Name() string {
	return g.name
}

func (g *MapsCo) Search(ctx context.Context, text string) ([]location.GeocodeCandidate, error) {
	values := url.Values{}
	values.Set("q", text)

	var payload []struct {
		Importance  float64   `json:"importance"`
		Lat         flexFloat `json:"lat"`
		Lon         flexFloat `json:"lon"`
		DisplayName string    `json:"display_name"`
	}
	if err := g.get(ctx, "/search", values, &payload); err != nil {
		return nil, err
	}

	out := make([]location.GeocodeCandidate, 0, len(payload))
	for _, p := range payload {
		out = append(out, location.GeocodeCandidate{
			Importance:  p.Importance,
			Latitude:    float64(p.Lat),
			Longitude:   float64(p.Lon),
			DisplayName: p.DisplayName,
		})
	}
	return out, nil
}

func (g *MapsCo) Reverse(ctx context.Context, lat, lon float64) (location.Address, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload struct {
		Address *location.Address `json:"address"`
		Error   string            `json:"error"`
	}
	if err := g.get(ctx, "/reverse", values, &payload); err != nil {
		return location.Address{}, err
	}
	if payload.Address == nil {
		if payload.Error != "" {
			return location.Address{}, fmt.Errorf("reverse geocoding: %s", payload.Error)
		}
		return location.Address{}, fmt.Errorf("reverse geocoding: response has no address")
	}
	return *payload.Address, nil
}

func (g *MapsCo) get(ctx context.Context, path string, values url.Values, out interface{}) error {
	if g.apiKey != "" {
		values.Set("api_key", g.apiKey)
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", g.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpclient.Do(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// flexFloat accepts both JSON numbers and numeric strings; Nominatim-style
// services return coordinates as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

var _ location.Geocoder = (*MapsCo)(nil)
