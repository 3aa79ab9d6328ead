package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"backend-fleetdesk/internal/fleet"

	"gopkg.in/yaml.v3"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(fleet.NewProvider(testNow), nil, "Fleet Management System")
	svc.now = func() time.Time { return testNow }
	return svc
}

type staticVehicles []fleet.VehicleRecord

func (s staticVehicles) Snapshot() []fleet.VehicleRecord { return s }

func TestCatalogLookup(t *testing.T) {
	if len(Catalog()) != 7 {
		t.Fatalf("expected seven report kinds")
	}
	def, err := Lookup("fuel-efficiency")
	if err != nil || def.Title != "Fuel Efficiency Report" {
		t.Fatalf("unexpected lookup: %+v %v", def, err)
	}
	if _, err := Lookup("payroll"); err != ErrUnknownReport {
		t.Fatalf("expected unknown report error")
	}
}

func TestBuildEveryKind(t *testing.T) {
	svc := newTestService()
	for _, def := range Catalog() {
		rep, err := svc.Build(string(def.Kind), "")
		if err != nil {
			t.Fatalf("%s: %v", def.Kind, err)
		}
		if rep.GeneratedBy != "Fleet Management System" {
			t.Fatalf("%s: expected default author", def.Kind)
		}
		if len(rep.Sections) < 3 {
			t.Fatalf("%s: expected meta, summary and data sections", def.Kind)
		}
		if rep.Sections[0].Title != def.Title || rep.Sections[0].Header != nil {
			t.Fatalf("%s: expected meta section first", def.Kind)
		}
		if rep.Sections[1].Title != "Summary" || len(rep.Sections[1].Rows) != len(rep.Summary) {
			t.Fatalf("%s: summary section out of sync", def.Kind)
		}
		for _, s := range rep.Sections[2:] {
			for _, row := range s.Rows {
				if len(row) != len(s.Header) {
					t.Fatalf("%s/%s: row width %d, header %d", def.Kind, s.Title, len(row), len(s.Header))
				}
			}
		}
		if len(rep.Insights) == 0 {
			t.Fatalf("%s: expected insights", def.Kind)
		}
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := newTestService().Build("payroll", "user-1"); err != ErrUnknownReport {
		t.Fatalf("expected unknown report")
	}
}

func TestSummaryTotalsMatchDataArrays(t *testing.T) {
	svc := newTestService()
	for _, def := range Catalog() {
		rep, err := svc.Build(string(def.Kind), "user-1")
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		body, err := json.Marshal(rep.Payload())
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var doc struct {
			Summary map[string]any             `json:"summary"`
			Data    map[string]json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		checked := 0
		for key, value := range doc.Summary {
			if !strings.HasPrefix(key, "total") {
				continue
			}
			name := strings.TrimPrefix(key, "total")
			name = strings.ToLower(name[:1]) + name[1:]
			var arr []json.RawMessage
			if err := json.Unmarshal(doc.Data[name], &arr); err != nil {
				t.Fatalf("%s: data.%s: %v", def.Kind, name, err)
			}
			if int(value.(float64)) != len(arr) {
				t.Fatalf("%s: %s=%v but data.%s has %d", def.Kind, key, value, name, len(arr))
			}
			checked++
		}
		if checked != 1 {
			t.Fatalf("%s: expected exactly one total, got %d", def.Kind, checked)
		}
	}
}

func TestSummaryKeepsOrder(t *testing.T) {
	s := Summary{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: 2.5},
		{Key: "mid", Value: "x"},
	}
	body, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"zeta":1,"alpha":2.5,"mid":"x"}` {
		t.Fatalf("unexpected json: %s", body)
	}

	var back Summary
	if err := json.Unmarshal(body, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 3 || back[0].Key != "zeta" || back[2].Key != "mid" {
		t.Fatalf("unexpected order: %+v", back)
	}
	if v, ok := back.Get("alpha"); !ok || v.(json.Number).String() != "2.5" {
		t.Fatalf("unexpected alpha: %v", v)
	}

	out, err := yaml.Marshal(s)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if string(out) != "zeta: 1\nalpha: 2.5\nmid: x\n" {
		t.Fatalf("unexpected yaml: %q", out)
	}
}

func TestComplianceDerivedFromClock(t *testing.T) {
	rep, err := newTestService().Build(string(Compliance), "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var overdue *ComplianceEntry
	for i, e := range rep.Data.ComplianceRecords {
		if e.SubjectID == "VH-104" {
			overdue = &rep.Data.ComplianceRecords[i]
		}
	}
	if overdue == nil {
		t.Fatalf("expected VH-104 entry")
	}
	if overdue.DaysUntilExpiry != -12 || overdue.OverallStatus != fleet.NonCompliant {
		t.Fatalf("unexpected overdue entry: %+v", overdue)
	}
	if v, _ := rep.Summary.Get("nonCompliant"); v != 2 {
		t.Fatalf("expected two non-compliant records, got %v", v)
	}
}

func TestFleetUsesLiveVehicles(t *testing.T) {
	live := staticVehicles{{ID: "VH-900", Status: fleet.StatusInTransit, FuelPercent: 20, Speed: 61.25, Alerts: []string{}}}
	svc := NewService(fleet.NewProvider(testNow), live, "")
	rep, err := svc.Build(string(FleetSummary), "ops")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if v, _ := rep.Summary.Get("totalVehicles"); v != 1 {
		t.Fatalf("expected one live vehicle, got %v", v)
	}
	sec, ok := rep.Section("Vehicles")
	if !ok || sec.Rows[0][0] != "VH-900" || sec.Rows[0][4] != "61.3" {
		t.Fatalf("unexpected vehicles section: %+v", sec)
	}
	if len(rep.Recommendations) == 0 || !strings.Contains(rep.Recommendations[0], "Refuel VH-900") {
		t.Fatalf("expected low fuel recommendation: %v", rep.Recommendations)
	}
}

func TestDriverSectionOrderedByRank(t *testing.T) {
	rep, _ := newTestService().Build(string(DriverPerformance), "")
	sec, ok := rep.Section("Driver Performance")
	if !ok {
		t.Fatalf("expected driver section")
	}
	if sec.Header[0] != "Rank" || sec.Header[2] != "Name" {
		t.Fatalf("unexpected header: %v", sec.Header)
	}
	for i, row := range sec.Rows {
		if row[0] != integer(i+1) {
			t.Fatalf("row %d out of rank order: %v", i, row)
		}
	}
	if len(rep.Recommendations) != 2 {
		t.Fatalf("expected coaching for two drivers, got %v", rep.Recommendations)
	}
}

func TestMaintenanceCoercesBooleansAndDates(t *testing.T) {
	rep, _ := newTestService().Build(string(Maintenance), "")
	sec, _ := rep.Section("Maintenance Schedule")
	first := sec.Rows[0]
	if first[3] != "2026-10-10" {
		t.Fatalf("expected ISO date, got %q", first[3])
	}
	if first[8] != "No" || sec.Rows[1][8] != "Yes" {
		t.Fatalf("expected Yes/No warranty values")
	}
}

func TestEmptyLiveFleetKeepsDataArray(t *testing.T) {
	svc := NewService(fleet.NewProvider(testNow), staticVehicles(nil), "Fleet Management System")
	svc.now = func() time.Time { return testNow }
	rep, err := svc.Build(string(FleetSummary), "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	body, err := json.Marshal(rep.Payload())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Summary map[string]any             `json:"summary"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Summary["totalVehicles"] != float64(0) {
		t.Fatalf("expected totalVehicles 0, got %v", doc.Summary["totalVehicles"])
	}
	if got := string(doc.Data["vehicles"]); got != "[]" {
		t.Fatalf("expected empty vehicles array, got %q", got)
	}
	if _, ok := doc.Data["drivers"]; ok {
		t.Fatalf("arrays of other kinds must stay out of the document")
	}

	out, err := yaml.Marshal(rep.Payload())
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(out), "vehicles: []") {
		t.Fatalf("expected empty vehicles list in yaml:\n%s", out)
	}
	if strings.Contains(string(out), "drivers:") {
		t.Fatalf("unexpected drivers key in yaml:\n%s", out)
	}
}
