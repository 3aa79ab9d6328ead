package share

import (
	"errors"

	"backend-fleetdesk/internal/report"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts POST /:slug/share on the reports router.
func RegisterRoutes(r fiber.Router, reports *report.Service, pipeline *Pipeline, baseURL string, authMiddleware fiber.Handler) {
	r.Post("/:slug/share", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		rep, err := reports.Build(c.Params("slug"), userID)
		if errors.Is(err, report.ErrUnknownReport) {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		payload := BuildPayload(rep, baseURL)
		outcome, err := pipeline.Share(c.Context(), userID, payload)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"outcome": outcome, "payload": payload})
	})
}

func RegisterClipboardRoutes(r fiber.Router, clipboard Clipboard, authMiddleware fiber.Handler) {
	r.Get("/clipboard", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		text, err := clipboard.Read(c.Context(), userID)
		if errors.Is(err, ErrEmptyClipboard) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"text": text})
	})
}
