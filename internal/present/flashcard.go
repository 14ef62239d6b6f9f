package present

import (
	"math"
	"strconv"
	"time"

	"github.com/maguitaria/upd-weather-app/internal/units"
	"github.com/maguitaria/upd-weather-app/internal/weather"
)

// FlashCard holds the display strings for one forecast day.
type FlashCard struct {
	Label       string `json:"label"`
	Date        string `json:"date"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Min         string `json:"min"`
	Max         string `json:"max"`
}

// DayLabel returns "Today" when day falls on the same calendar date as now,
// compared in day's time zone, and the long weekday name otherwise.
func DayLabel(day, now time.Time) string {
	dy, dm, dd := day.Date()
	ny, nm, nd := now.In(day.Location()).Date()
	if dy == ny && dm == nm && dd == nd {
		return "Today"
	}
	return day.Weekday().String()
}

// ShortDate formats day as e.g. "Mon, Jan 2".
func ShortDate(day time.Time) string {
	return day.Format("Mon, Jan 2")
}

// FormatTemperature converts a Celsius value, rounds it to a whole number and
// appends the degree sign and unit letter.
func FormatTemperature(celsius float64, unit units.Unit) string {
	v := math.Round(units.ToDisplay(celsius, unit))
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', 0, 64) + "°" + unit.Letter()
}

func BuildFlashCard(day weather.DailySummary, unit units.Unit, now time.Time) FlashCard {
	return FlashCard{
		Label:       DayLabel(day.Day, now),
		Date:        ShortDate(day.Day),
		Icon:        day.Icon,
		Description: day.Description,
		Min:         FormatTemperature(day.MinTemperature, unit),
		Max:         FormatTemperature(day.MaxTemperature, unit),
	}
}

func BuildFlashCards(days []weather.DailySummary, unit units.Unit, now time.Time) []FlashCard {
	cards := make([]FlashCard, 0, len(days))
	for _, d := range days {
		cards = append(cards, BuildFlashCard(d, unit, now))
	}
	return cards
}
