package report

import (
	"errors"
	"time"

	"backend-fleetdesk/internal/view"

	"github.com/gofiber/fiber/v2"
)

type viewResponse struct {
	Report          Definition                      `json:"report"`
	GeneratedAt     time.Time                       `json:"generated_at"`
	Summary         Summary                         `json:"summary"`
	State           *view.ReportState               `json:"state"`
	Section         Section                         `json:"section"`
	Ratings         map[string]view.StarRating      `json:"ratings,omitempty"`
	Compliance      map[string]view.ComplianceBadge `json:"compliance,omitempty"`
	Insights        []string                        `json:"insights"`
	Recommendations []string                        `json:"recommendations"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.Catalog())
	})

	r.Get("/:slug", func(c *fiber.Ctx) error {
		rep, err := svc.Build(c.Params("slug"), "")
		if errors.Is(err, ErrUnknownReport) {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		resp, err := render(rep, c.Query("tab"), c.Query("filter"), c.Query("expand"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(resp)
	})
}

func render(rep Report, tab, filter, expand string) (viewResponse, error) {
	tabs := make([]string, len(rep.Sections))
	for i, s := range rep.Sections {
		tabs[i] = s.Title
	}
	state := view.NewReportState(tabs)
	if err := state.Select(tab); err != nil {
		return viewResponse{}, err
	}
	state.SetFilter(filter)
	if expand != "" {
		state.Toggle(expand)
	}

	section, _ := rep.Section(state.Selected)
	section.Rows = state.Apply(section.Rows)

	resp := viewResponse{
		Report:          rep.Definition,
		GeneratedAt:     rep.GeneratedAt,
		Summary:         rep.Summary,
		State:           state,
		Section:         section,
		Insights:        nonNil(rep.Insights),
		Recommendations: nonNil(rep.Recommendations),
	}
	if len(rep.Data.Drivers) > 0 {
		resp.Ratings = make(map[string]view.StarRating, len(rep.Data.Drivers))
		for _, d := range rep.Data.Drivers {
			resp.Ratings[d.ID] = view.Stars(d.CustomerRating)
		}
	}
	if len(rep.Data.ComplianceRecords) > 0 {
		resp.Compliance = make(map[string]view.ComplianceBadge, len(rep.Data.ComplianceRecords))
		for _, e := range rep.Data.ComplianceRecords {
			resp.Compliance[e.SubjectID] = view.Compliance(e.DaysUntilExpiry)
		}
	}
	return resp, nil
}
