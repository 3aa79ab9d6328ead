package notify

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, board *Board) {
	r.Get("/", func(c *fiber.Ctx) error {
		toasts, err := board.Active(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if toasts == nil {
			toasts = []Toast{}
		}
		return c.JSON(toasts)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		err := board.Dismiss(c.Context(), c.Params("id"))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
