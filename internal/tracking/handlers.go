package tracking

import (
	"log"

	"backend-fleetdesk/internal/stream"
	"backend-fleetdesk/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, sim *Simulator, f *Fleet, hub *stream.Hub, authMiddleware fiber.Handler) {
	r.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(sim.Status())
	})

	r.Get("/vehicles", func(c *fiber.Ctx) error {
		return c.JSON(f.Snapshot())
	})

	r.Get("/vehicles/:id", func(c *fiber.Ctx) error {
		v, ok := f.Vehicle(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		return c.JSON(v)
	})

	r.Post("/pause", authMiddleware, func(c *fiber.Ctx) error {
		sim.Pause()
		return c.JSON(sim.Status())
	})

	r.Post("/resume", authMiddleware, func(c *fiber.Ctx) error {
		sim.Resume()
		return c.JSON(sim.Status())
	})

	r.Get("/live/:vehicleID", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if _, ok := f.Vehicle(c.Params("vehicleID")); !ok {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		return c.Next()
	}, websocket.New(func(c *websocket.Conn) {
		liveMap(c, f, hub)
	}))
}

// liveMap streams one vehicle's position while the map dialog is open.
// Disconnecting closes the dialog, which unregisters the hub client.
func liveMap(c *websocket.Conn, f *Fleet, hub *stream.Hub) {
	vehicleID := c.Params("vehicleID")
	client := hub.Register(FleetChannel)
	dialog := view.NewMapDialog()
	dialog.Open(vehicleID, func() { hub.Unregister(client) })
	defer dialog.Close()

	send := func() bool {
		v, ok := f.Vehicle(vehicleID)
		if !ok {
			return false
		}
		if err := c.WriteJSON(v); err != nil {
			return false
		}
		return true
	}
	if !send() {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case _, ok := <-client.Send:
			if !ok {
				return
			}
			if !send() {
				log.Printf("live map %s: write failed", vehicleID)
				return
			}
		}
	}
}
