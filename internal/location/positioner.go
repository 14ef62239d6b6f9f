package location

import (
	"context"
	"errors"
)

// ErrGeolocationUnsupported is reported when no device position source is available.
var ErrGeolocationUnsupported = errors.New("geolocation is not supported by this device")

// Position is a device coordinate fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Positioner is the device geolocation capability. Errors carry a
// human-readable message suitable for showing to the user.
type Positioner interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// StaticPositioner reports a fixed position, or Err when set. It models a
// position reported by the browser, or one configured for the host.
type StaticPositioner struct {
	Position Position
	Err      error
}

func (p StaticPositioner) CurrentPosition(context.Context) (Position, error) {
	if p.Err != nil {
		return Position{}, p.Err
	}
	return p.Position, nil
}

// UnsupportedPositioner always fails with ErrGeolocationUnsupported.
type UnsupportedPositioner struct{}

func (UnsupportedPositioner) CurrentPosition(context.Context) (Position, error) {
	return Position{}, ErrGeolocationUnsupported
}
