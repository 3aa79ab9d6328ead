package view

import (
	"fmt"
	"math"

	"backend-fleetdesk/internal/fleet"
)

const MaxStars = 5

type StarRating struct {
	Full    int `json:"full"`
	Partial int `json:"partial"`
	Empty   int `json:"empty"`
}

// Stars renders floor(rating) full stars, one partial star for any
// fractional remainder, and pads with empty stars up to MaxStars.
func Stars(rating float64) StarRating {
	if rating < 0 || math.IsNaN(rating) {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}
	full := int(math.Floor(rating))
	partial := 0
	if rating-float64(full) > 0 {
		partial = 1
	}
	return StarRating{Full: full, Partial: partial, Empty: MaxStars - full - partial}
}

type ComplianceBadge struct {
	Status fleet.ComplianceStatus `json:"status"`
	Label  string                 `json:"label"`
	Days   int                    `json:"days"`
}

// Compliance labels an expiry countdown. Negative days are shown as overdue
// and always classify as Non-Compliant.
func Compliance(days int) ComplianceBadge {
	badge := ComplianceBadge{Status: fleet.ClassifyDays(days), Days: days}
	switch {
	case days < 0:
		badge.Label = fmt.Sprintf("Overdue by %d %s", -days, plural(-days))
	case days == 0:
		badge.Label = "Expires today"
	default:
		badge.Label = fmt.Sprintf("%d %s left", days, plural(days))
	}
	return badge
}

func plural(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
