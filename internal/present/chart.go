package present

import (
	"fmt"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/units"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

// The value axis range is tuned for Celsius and is deliberately not rescaled
// when displaying Fahrenheit.
const (
	YAxisMin  = -20
	YAxisMax  = 30
	YAxisStep = 2
)

// Chart is a line chart configuration shaped after Chart.js data/options.
type Chart struct {
	Title   string       `json:"title"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []time.Time `json:"labels"`
	Datasets []Dataset   `json:"datasets"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type ChartOptions struct {
	Plugins             Plugins  `json:"plugins"`
	Scales              Scales   `json:"scales"`
	Elements            Elements `json:"elements"`
	Responsive          bool     `json:"responsive"`
	MaintainAspectRatio bool     `json:"maintainAspectRatio"`
}

type Plugins struct {
	Legend bool `json:"legend"`
}

type Scales struct {
	Y ValueAxis `json:"y"`
	X TimeAxis  `json:"x"`
}

type ValueAxis struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Ticks Ticks     `json:"ticks"`
	Title AxisTitle `json:"title"`
}

type Ticks struct {
	StepSize float64 `json:"stepSize"`
}

type TimeAxis struct {
	Type  string    `json:"type"`
	Time  TimeScale `json:"time"`
	Title AxisTitle `json:"title"`
	Grid  Grid      `json:"grid"`
}

type TimeScale struct {
	Unit           string            `json:"unit"`
	DisplayFormats map[string]string `json:"displayFormats"`
	MinUnit        string            `json:"minUnit"`
}

type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type Grid struct {
	Display bool `json:"display"`
}

type Elements struct {
	Line LineElement `json:"line"`
	Area AreaElement `json:"area"`
}

type LineElement struct {
	Tension float64 `json:"tension"`
}

type AreaElement struct {
	BackgroundColor string `json:"backgroundColor"`
}

// TemperatureAxisTitle is the value axis title for unit, e.g. "Temperature (°C)".
func TemperatureAxisTitle(unit units.Unit) string {
	return fmt.Sprintf("Temperature (°%s)", unit.Letter())
}

// DefaultChartOptions returns the fixed chart options with the value axis titled for unit.
func DefaultChartOptions(unit units.Unit) ChartOptions {
	return ChartOptions{
		Plugins: Plugins{Legend: true},
		Scales: Scales{
			Y: ValueAxis{
				Min:   YAxisMin,
				Max:   YAxisMax,
				Ticks: Ticks{StepSize: YAxisStep},
				Title: AxisTitle{Display: true, Text: TemperatureAxisTitle(unit)},
			},
			X: TimeAxis{
				Type: "time",
				Time: TimeScale{
					Unit:           "day",
					DisplayFormats: map[string]string{"day": "EEE, MMM d"},
					MinUnit:        "day",
				},
				Title: AxisTitle{Display: true, Text: "Week"},
				Grid:  Grid{Display: false},
			},
		},
		Elements: Elements{
			Line: LineElement{Tension: 0.4},
			Area: AreaElement{BackgroundColor: "rgba(255, 255, 255, 0.8)"},
		},
		Responsive:          true,
		MaintainAspectRatio: false,
	}
}

// BuildChart derives the chart for a fetched week in the given unit. The
// week's Celsius values are copied, never modified.
func BuildChart(week weather.Week, unit units.Unit, loc state.ResolvedLocation) Chart {
	labels := append([]time.Time(nil), week.Series.Timestamps...)

	return Chart{
		Title: "Hourly chart of weather in " + loc.County,
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{{
				Label: "Temperature",
				Data:  units.ConvertAll(week.Series.Values, unit),
			}},
		},
		Options: DefaultChartOptions(unit),
	}
}
