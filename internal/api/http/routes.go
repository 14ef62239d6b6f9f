package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/maguitaria/upd-weather-app/internal/dashboard"
	"github.com/maguitaria/upd-weather-app/internal/location"
	"github.com/maguitaria/upd-weather-app/internal/state"
	"github.com/maguitaria/upd-weather-app/internal/units"
)

var validate = validator.New()

// Deps are the components the HTTP handlers drive.
type Deps struct {
	Dashboard *dashboard.Dashboard
	Resolver  *location.Resolver
	Location  *state.LocationState
	Units     *state.UnitState

	// Device is the host's own geolocation capability.
	Device location.Positioner
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(d.Dashboard.View())
	})

	v1.Get("/chart", func(c *fiber.Ctx) error {
		v := d.Dashboard.View()
		return c.JSON(fiber.Map{
			"loading": v.Loading,
			"chart":   v.Chart,
		})
	})

	v1.Get("/cards", func(c *fiber.Ctx) error {
		v := d.Dashboard.View()
		return c.JSON(fiber.Map{
			"unit":  v.Unit,
			"cards": v.Cards,
		})
	})

	v1.Get("/location", func(c *fiber.Ctx) error {
		return c.JSON(locationResponse(d.Location, true))
	})

	v1.Post("/location/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		_, err := d.Resolver.SearchByName(c.UserContext(), req.Query)
		return c.JSON(locationResponse(d.Location, err == nil))
	})

	v1.Post("/location/coordinates", func(c *fiber.Ctx) error {
		var req coordinatesRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		p, err := req.positioner()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		_, err = d.Resolver.ResolveFromCoordinates(c.UserContext(), p)
		return c.JSON(locationResponse(d.Location, err == nil))
	})

	v1.Post("/location/device", func(c *fiber.Ctx) error {
		_, err := d.Resolver.ResolveFromCoordinates(c.UserContext(), d.Device)
		return c.JSON(locationResponse(d.Location, err == nil))
	})

	v1.Get("/unit", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"unit": d.Units.Get()})
	})

	v1.Put("/unit", func(c *fiber.Ctx) error {
		var req unitRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		u, err := units.ParseUnit(req.Unit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		d.Units.Set(u)
		return c.JSON(fiber.Map{"unit": d.Units.Get()})
	})
}

func locationResponse(ls *state.LocationState, found bool) fiber.Map {
	loc := ls.Get()
	return fiber.Map{
		"found":    found,
		"location": loc,
		"label":    location.Label(loc),
		"error":    ls.Error(),
	}
}

func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
}

type unitRequest struct {
	Unit string `json:"unit" validate:"required"`
}

// coordinatesRequest carries the browser's geolocation result: either a
// position or the error message the browser reported.
type coordinatesRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Error     string   `json:"error"`
}

func (r coordinatesRequest) positioner() (location.Positioner, error) {
	if r.Error != "" {
		return location.StaticPositioner{Err: errors.New(r.Error)}, nil
	}
	if err := validate.Struct(r); err != nil {
		return nil, err
	}
	return location.StaticPositioner{Position: location.Position{
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
	}}, nil
}
