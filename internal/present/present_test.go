package present

import (
	"testing"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/units"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

func testWeek() weather.Week {
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	return weather.Week{
		Series: weather.TemperatureSeries{
			Timestamps: []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)},
			Values:     []float64{0, 10, 25},
		},
	}
}

func TestBuildChartUnitSwitch(t *testing.T) {
	week := testWeek()
	loc := state.ResolvedLocation{County: "Uusimaa"}

	c := BuildChart(week, units.Celsius, loc)
	f := BuildChart(week, units.Fahrenheit, loc)

	if c.Options.Scales.Y.Title.Text != "Temperature (°C)" {
		t.Fatalf("unexpected Celsius title %q", c.Options.Scales.Y.Title.Text)
	}
	if f.Options.Scales.Y.Title.Text != "Temperature (°F)" {
		t.Fatalf("unexpected Fahrenheit title %q", f.Options.Scales.Y.Title.Text)
	}

	cv := c.Data.Datasets[0].Data
	fv := f.Data.Datasets[0].Data
	want := []float64{32, 50, 77}
	for i := range want {
		if fv[i] != want[i] {
			t.Fatalf("fahrenheit[%d] = %v, want %v", i, fv[i], want[i])
		}
		if cv[i] > 0 && fv[i] <= cv[i] {
			t.Fatalf("expected converted value %v to exceed %v", fv[i], cv[i])
		}
	}

	if week.Series.Values[1] != 10 {
		t.Fatal("canonical Celsius values were mutated")
	}
	if c.Title != "Hourly chart of weather in Uusimaa" {
		t.Fatalf("unexpected title %q", c.Title)
	}
	if len(c.Data.Labels) != 3 {
		t.Fatalf("expected one label per sample, got %d", len(c.Data.Labels))
	}
}

func TestChartAxisRangeIsNotRescaled(t *testing.T) {
	f := BuildChart(testWeek(), units.Fahrenheit, state.ResolvedLocation{})
	y := f.Options.Scales.Y
	if y.Min != YAxisMin || y.Max != YAxisMax || y.Ticks.StepSize != YAxisStep {
		t.Fatalf("unexpected y axis %+v", y)
	}

	x := f.Options.Scales.X
	if x.Type != "time" || x.Time.Unit != "day" || x.Time.DisplayFormats["day"] != "EEE, MMM d" {
		t.Fatalf("unexpected x axis %+v", x)
	}
}

func TestDayLabel(t *testing.T) {
	zone := time.FixedZone("EET", 2*3600)
	now := time.Date(2024, 5, 8, 23, 30, 0, 0, zone)

	today := time.Date(2024, 5, 8, 0, 0, 0, 0, zone)
	if got := DayLabel(today, now); got != "Today" {
		t.Fatalf("expected Today, got %q", got)
	}

	tomorrow := time.Date(2024, 5, 9, 0, 0, 0, 0, zone)
	if got := DayLabel(tomorrow, now); got != "Thursday" {
		t.Fatalf("expected Thursday, got %q", got)
	}

	// Same instant seen from UTC is still the 8th in the day's zone.
	if got := DayLabel(today, now.UTC()); got != "Today" {
		t.Fatalf("expected Today across zones, got %q", got)
	}

	lastYear := time.Date(2023, 5, 8, 0, 0, 0, 0, zone)
	if got := DayLabel(lastYear, now); got != "Monday" {
		t.Fatalf("expected Monday, got %q", got)
	}
}

func TestBuildFlashCard(t *testing.T) {
	day := weather.DailySummary{
		Day:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		MaxTemperature: 3.6,
		MinTemperature: -0.4,
		Icon:           "/icons/snow.svg",
		Description:    "Snow fall",
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	c := BuildFlashCard(day, units.Celsius, now)
	if c.Label != "Tuesday" || c.Date != "Tue, Jan 2" {
		t.Fatalf("unexpected label/date %q %q", c.Label, c.Date)
	}
	if c.Max != "4°C" || c.Min != "0°C" {
		t.Fatalf("unexpected temperatures %q %q", c.Min, c.Max)
	}
	if c.Icon != day.Icon || c.Description != day.Description {
		t.Fatalf("icon/description not passed through: %+v", c)
	}

	f := BuildFlashCard(day, units.Fahrenheit, now)
	if f.Max != "38°F" || f.Min != "31°F" {
		t.Fatalf("unexpected Fahrenheit temperatures %q %q", f.Min, f.Max)
	}
}

func TestBuildFlashCardsMarksToday(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	days := []weather.DailySummary{
		{Day: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Day: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	cards := BuildFlashCards(days, units.Celsius, now)
	if len(cards) != 2 || cards[0].Label != "Today" || cards[1].Label != "Tuesday" {
		t.Fatalf("unexpected cards %+v", cards)
	}
}

func TestFormatTemperatureRounding(t *testing.T) {
	cases := map[float64]string{
		2.5:  "3°C",
		-2.5: "-3°C",
		-0.2: "0°C",
		21.4: "21°C",
	}
	for in, want := range cases {
		if got := FormatTemperature(in, units.Celsius); got != want {
			t.Errorf("FormatTemperature(%v) = %q, want %q", in, got, want)
		}
	}
}
