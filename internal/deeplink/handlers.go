package deeplink

import (
	"backend-fleetdesk/internal/fleet"

	"github.com/gofiber/fiber/v2"
)

type DriverDirectory interface {
	Driver(id string) (fleet.DriverRecord, bool)
}

type VehicleDirectory interface {
	Vehicle(id string) (fleet.VehicleRecord, bool)
}

// RegisterRoutes mounts the contact and directions links. Redirects hand
// off to the client platform, so nothing is known about the outcome.
func RegisterRoutes(r fiber.Router, drivers DriverDirectory, vehicles VehicleDirectory) {
	r.Get("/drivers/:id", func(c *fiber.Ctx) error {
		d, ok := drivers.Driver(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "driver not found")
		}
		return c.JSON(fiber.Map{
			"driver": fiber.Map{"id": d.ID, "name": d.Name, "phone": d.Phone, "email": d.Email},
			"links":  Contact(d.Phone, d.Email, c.Query("body"), c.Query("subject")),
		})
	})

	r.Get("/drivers/:id/call", driverRedirect(drivers, func(_ *fiber.Ctx, d fleet.DriverRecord) (string, error) {
		return Tel(d.Phone), nil
	}))
	r.Get("/drivers/:id/sms", driverRedirect(drivers, func(c *fiber.Ctx, d fleet.DriverRecord) (string, error) {
		return SMS(d.Phone, c.Query("body")), nil
	}))
	r.Get("/drivers/:id/email", driverRedirect(drivers, func(c *fiber.Ctx, d fleet.DriverRecord) (string, error) {
		link := Mailto(d.Email, c.Query("subject"))
		if link == "" {
			return "", fiber.NewError(fiber.StatusNotFound, "driver has no email")
		}
		return link, nil
	}))

	r.Get("/vehicles/:id/directions", func(c *fiber.Ctx) error {
		v, ok := vehicles.Vehicle(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		nav := ForUserAgent(c.Get(fiber.HeaderUserAgent))
		if name := c.Query("nav"); name != "" {
			var err error
			if nav, err = ByName(name); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		return c.Redirect(nav.Directions(v.Position, v.Destination), fiber.StatusFound)
	})
}

func driverRedirect(drivers DriverDirectory, link func(*fiber.Ctx, fleet.DriverRecord) (string, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, ok := drivers.Driver(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "driver not found")
		}
		to, err := link(c, d)
		if err != nil {
			return err
		}
		return c.Redirect(to, fiber.StatusFound)
	}
}
