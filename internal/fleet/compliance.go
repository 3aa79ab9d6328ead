package fleet

import (
	"math"
	"time"
)

type ComplianceStatus string

const (
	Compliant    ComplianceStatus = "Compliant"
	Warning      ComplianceStatus = "Warning"
	Critical     ComplianceStatus = "Critical"
	NonCompliant ComplianceStatus = "Non-Compliant"
)

const (
	criticalWithinDays = 7
	warningWithinDays  = 30
)

type ComplianceDocument struct {
	Name       string    `json:"name" yaml:"name"`
	ExpiryDate time.Time `json:"expiryDate" yaml:"expiryDate"`
}

type ComplianceRecord struct {
	SubjectID   string               `json:"subjectId" yaml:"subjectId"`
	SubjectName string               `json:"subjectName" yaml:"subjectName"`
	Kind        string               `json:"kind" yaml:"kind"`
	Documents   []ComplianceDocument `json:"documents" yaml:"documents"`
}

// DaysUntil counts whole calendar days from now to the expiry date.
// Negative values mean the document is overdue.
func (d ComplianceDocument) DaysUntil(now time.Time) int {
	expiry := truncateDay(d.ExpiryDate.In(now.Location()))
	return int(math.Round(expiry.Sub(truncateDay(now)).Hours() / 24))
}

// ClassifyDays maps a days-until-expiry count to a compliance status.
func ClassifyDays(days int) ComplianceStatus {
	switch {
	case days < 0:
		return NonCompliant
	case days <= criticalWithinDays:
		return Critical
	case days <= warningWithinDays:
		return Warning
	default:
		return Compliant
	}
}

// NextExpiry returns the document expiring first.
func (r ComplianceRecord) NextExpiry() (ComplianceDocument, bool) {
	if len(r.Documents) == 0 {
		return ComplianceDocument{}, false
	}
	next := r.Documents[0]
	for _, d := range r.Documents[1:] {
		if d.ExpiryDate.Before(next.ExpiryDate) {
			next = d
		}
	}
	return next, true
}

// OverallStatus is the status of the soonest-expiring document. A record
// without documents is Non-Compliant.
func (r ComplianceRecord) OverallStatus(now time.Time) ComplianceStatus {
	next, ok := r.NextExpiry()
	if !ok {
		return NonCompliant
	}
	return ClassifyDays(next.DaysUntil(now))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
