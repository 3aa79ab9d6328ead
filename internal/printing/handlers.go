package printing

import (
	"bytes"
	"errors"
	"time"

	"backend-fleetdesk/internal/report"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts GET /:slug/print on the reports router.
func RegisterRoutes(r fiber.Router, reports *report.Service, cleanupDelay time.Duration) {
	r.Get("/:slug/print", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		rep, err := reports.Build(c.Params("slug"), userID)
		if errors.Is(err, report.ErrUnknownReport) {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		var page bytes.Buffer
		pipeline := NewPipeline(NewHTMLDialog(&page), cleanupDelay)
		if err := pipeline.Print(c.Context(), NewDocument(rep)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(page.Bytes())
	})
}
