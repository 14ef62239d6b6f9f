package weather

import (
	"errors"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Icon returns the icon reference the front end serves for this condition.
func (c Condition) Icon() string {
	if c == "" {
		c = ConditionUnknown
	}
	return "/icons/" + string(c) + ".svg"
}

// ErrSeriesLength is returned when timestamps and values do not line up.
var ErrSeriesLength = errors.New("temperature series timestamps and values differ in length")

// TemperatureSeries is a time-ordered run of Celsius samples. Timestamps and
// Values always have the same length.
type TemperatureSeries struct {
	Timestamps []time.Time `json:"timestamps"`
	Values     []float64   `json:"values"`
}

// NewTemperatureSeries pairs timestamps with Celsius values.
func NewTemperatureSeries(timestamps []time.Time, values []float64) (TemperatureSeries, error) {
	if len(timestamps) != len(values) {
		return TemperatureSeries{}, ErrSeriesLength
	}
	return TemperatureSeries{Timestamps: timestamps, Values: values}, nil
}

func (s TemperatureSeries) Len() int {
	return len(s.Values)
}

// Validate checks the length invariant.
func (s TemperatureSeries) Validate() error {
	if len(s.Timestamps) != len(s.Values) {
		return ErrSeriesLength
	}
	return nil
}

// DailySummary is one day's forecast, temperatures in Celsius. Day is
// midnight in the forecast location's time zone.
type DailySummary struct {
	Day            time.Time `json:"day"`
	MaxTemperature float64   `json:"maxTemperatureC"`
	MinTemperature float64   `json:"minTemperatureC"`
	Condition      Condition `json:"condition"`
	Icon           string    `json:"icon"`
	Description    string    `json:"description"`
}

// Week is what the gateway fetches for one pair of coordinates. It is
// replaced wholesale on refetch, never mutated.
type Week struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Provider  string            `json:"provider"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Series    TemperatureSeries `json:"series"`
	Days      []DailySummary    `json:"days"`
}
