package storage

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/exports", authMiddleware, func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			userID, _ = c.Locals("user_id").(string)
		}
		records, err := svc.ListExports(c.Context(), userID, c.QueryInt("limit", defaultListLimit))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(records)
	})
}
