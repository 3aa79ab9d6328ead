package export

import (
	"errors"

	"backend-fleetdesk/internal/report"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts GET /:slug/export on the reports router.
func RegisterRoutes(r fiber.Router, reports *report.Service, exp *Exporter, blobs *BlobStore, authMiddleware fiber.Handler) {
	r.Get("/:slug/export", authMiddleware, func(c *fiber.Ctx) error {
		format, err := ParseFormat(c.Query("format"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, _ := c.Locals("user_id").(string)
		rep, err := reports.Build(c.Params("slug"), userID)
		if errors.Is(err, report.ErrUnknownReport) {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		res, err := exp.Export(c.Context(), rep, format, NewResponseSink(c, blobs))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "export failed")
		}
		if res.ExportID != "" {
			c.Set("X-Export-ID", res.ExportID)
		}
		return nil
	})
}
