package location

import (
	"context"
	"strings"

	"github.com/maguitaria/upd-weather-app/internal/state"
)

// GeocodeCandidate is one result of a free-text geocoding search.
type GeocodeCandidate struct {
	Importance  float64 `json:"importance"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

// Address holds the raw address fields returned by reverse geocoding.
// Any field may be empty.
type Address struct {
	Town         string `json:"town"`
	City         string `json:"city"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// Geocoder abstracts a forward/reverse geocoding service.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, text string) ([]GeocodeCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) (Address, error)
}

// Label renders "country, county, town", skipping empty parts.
func Label(loc state.ResolvedLocation) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.Country, loc.County, loc.Town} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SelectMostRelevant returns the candidate with the strictly highest
// importance. Ties keep the first candidate seen. Candidates whose importance
// is not above zero are never selected.
func SelectMostRelevant(candidates []GeocodeCandidate) (GeocodeCandidate, bool) {
	var (
		best    GeocodeCandidate
		highest float64
		found   bool
	)
	for _, c := range candidates {
		if c.Importance > highest {
			best = c
			highest = c.Importance
			found = true
		}
	}
	return best, found
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
