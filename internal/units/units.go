package units

import (
	"fmt"
	"strings"
)

// Unit is the temperature unit used for display. Stored values are always Celsius.
type Unit string

const (
	Celsius    Unit = "Celsius"
	Fahrenheit Unit = "Fahrenheit"
)

// ParseUnit accepts the full unit name or its first letter, case-insensitive.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "celsius", "c":
		return Celsius, nil
	case "fahrenheit", "f":
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("unknown temperature unit %q", s)
	}
}

// Letter returns the first letter of the unit name, used in axis titles and suffixes.
func (u Unit) Letter() string {
	if u == "" {
		return ""
	}
	return string(u[0])
}

// ToDisplay converts a Celsius value into the given unit.
func ToDisplay(celsius float64, unit Unit) float64 {
	if unit == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

// ConvertAll maps every value through ToDisplay into a new slice.
func ConvertAll(celsius []float64, unit Unit) []float64 {
	out := make([]float64, len(celsius))
	for i, v := range celsius {
		out[i] = ToDisplay(v, unit)
	}
	return out
}
