package view

import (
	"errors"
	"strings"
)

var ErrUnknownTab = errors.New("unknown tab")

// ReportState is the per-request view over one report: which tab is
// selected, the active row filter and the expanded row.
type ReportState struct {
	Tabs     []string `json:"tabs"`
	Selected string   `json:"selected"`
	Filter   string   `json:"filter,omitempty"`
	Expanded string   `json:"expanded,omitempty"`
}

func NewReportState(tabs []string) *ReportState {
	s := &ReportState{Tabs: append([]string(nil), tabs...)}
	if len(tabs) > 0 {
		s.Selected = tabs[0]
	}
	return s
}

// Select switches tabs by exact or case-insensitive name. An empty name
// keeps the current tab.
func (s *ReportState) Select(tab string) error {
	if tab == "" {
		return nil
	}
	for _, t := range s.Tabs {
		if strings.EqualFold(t, tab) {
			s.Selected = t
			s.Expanded = ""
			return nil
		}
	}
	return ErrUnknownTab
}

// Toggle expands a row, or collapses it when it is already expanded.
func (s *ReportState) Toggle(rowID string) {
	if s.Expanded == rowID {
		s.Expanded = ""
		return
	}
	s.Expanded = rowID
}

func (s *ReportState) SetFilter(q string) {
	s.Filter = strings.TrimSpace(q)
}

// Apply returns the rows with any cell containing the filter,
// case-insensitively.
func (s *ReportState) Apply(rows [][]string) [][]string {
	if s.Filter == "" {
		return rows
	}
	q := strings.ToLower(s.Filter)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
