package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"backend-fleetdesk/internal/fleet"
	"backend-fleetdesk/internal/report"

	"gopkg.in/yaml.v3"
)

func buildReport(t *testing.T, slug string) report.Report {
	t.Helper()
	svc := report.NewService(fleet.NewProvider(time.Now()), nil, "Fleet Management System")
	rep, err := svc.Build(slug, "")
	if err != nil {
		t.Fatalf("build %s: %v", slug, err)
	}
	return rep
}

type memoryNotifier struct {
	mu        sync.Mutex
	successes []string
	alerts    []string
}

func (n *memoryNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *memoryNotifier) Alert(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, msg)
}

type memoryRecorder struct {
	records []Record
	err     error
}

func (r *memoryRecorder) RecordExport(_ context.Context, rec Record) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.records = append(r.records, rec)
	return "exp-1", nil
}

type countingSink struct {
	deliverErr error
	delivered  []Artifact
	released   int
}

func (s *countingSink) Open(_ context.Context, a Artifact) (Handle, error) {
	return &countingHandle{sink: s, a: a}, nil
}

type countingHandle struct {
	sink *countingSink
	a    Artifact
}

func (h *countingHandle) Deliver(context.Context) error {
	if h.sink.deliverErr != nil {
		return h.sink.deliverErr
	}
	h.sink.delivered = append(h.sink.delivered, h.a)
	return nil
}

func (h *countingHandle) Release() error {
	h.sink.released++
	return nil
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatCSV, "CSV": FormatCSV, "json": FormatJSON, "yml": FormatYAML}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %q %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatalf("expected error for pdf")
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)
	if got := Filename("fleet-summary", FormatJSON, at); got != "fleet-summary-report-2026-03-09.json" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestCSVSectionRowsMatchRecords(t *testing.T) {
	cases := []struct {
		slug    string
		section string
		records func(report.Dataset) int
	}{
		{"driver-performance", "Driver Performance", func(d report.Dataset) int { return len(d.Drivers) }},
		{"fleet-summary", "Vehicles", func(d report.Dataset) int { return len(d.Vehicles) }},
		{"shipment-tracking", "Shipments", func(d report.Dataset) int { return len(d.Shipments) }},
		{"compliance", "Compliance", func(d report.Dataset) int { return len(d.ComplianceRecords) }},
		{"fuel-efficiency", "Fuel Consumption", func(d report.Dataset) int { return len(d.FuelRecords) }},
		{"maintenance", "Maintenance Schedule", func(d report.Dataset) int { return len(d.MaintenanceRecords) }},
		{"route-optimization", "Route Optimization", func(d report.Dataset) int { return len(d.Routes) }},
	}
	for _, tc := range cases {
		rep := buildReport(t, tc.slug)
		data, err := EncodeCSV(rep.Sections)
		if err != nil {
			t.Fatalf("%s: encode: %v", tc.slug, err)
		}
		header, rows := readSection(t, data, tc.section)
		want, _ := rep.Section(tc.section)
		if strings.Join(header, "|") != strings.Join(want.Header, "|") {
			t.Fatalf("%s: header order changed: %v", tc.slug, header)
		}
		if n := tc.records(rep.Data); len(rows) != n || n == 0 {
			t.Fatalf("%s: expected %d data rows, got %d", tc.slug, n, len(rows))
		}
	}
}

// readSection parses CSV output back into the header and rows of the
// section titled title.
func readSection(t *testing.T, data []byte, title string) ([]string, [][]string) {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// csv.Reader skips blank lines, so sections are split on title rows.
	for i, rec := range records {
		if len(rec) != 1 || rec[0] != title {
			continue
		}
		header := records[i+1]
		var rows [][]string
		for _, row := range records[i+2:] {
			if len(row) != len(header) {
				break
			}
			rows = append(rows, row)
		}
		return header, rows
	}
	t.Fatalf("section %q not found", title)
	return nil, nil
}

func TestCSVQuotesEmbeddedDelimiters(t *testing.T) {
	rep := buildReport(t, "driver-performance")
	data, err := EncodeCSV(rep.Sections)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Contains(data, []byte(`"Regional; Construction, Bulk"`)) {
		t.Fatalf("expected quoted specialization field")
	}
	_, rows := readSection(t, data, "Driver Performance")
	var found bool
	for _, row := range rows {
		if row[2] == "James O'Connor" {
			found = true
			if row[9] != "Regional; Construction, Bulk" {
				t.Fatalf("specializations not preserved: %q", row[9])
			}
		}
	}
	if !found {
		t.Fatalf("expected James O'Connor row")
	}

	sections := []report.Section{{Title: "Notes", Header: []string{"Note"}, Rows: [][]string{{`said "hi"`}}}}
	data, err = EncodeCSV(sections)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"said ""hi"""`) {
		t.Fatalf("expected doubled quotes, got %s", data)
	}
}

func TestCSVBlankRowBetweenSections(t *testing.T) {
	sections := []report.Section{
		{Title: "A", Rows: [][]string{{"x", "1"}}},
		{Title: "B", Header: []string{"h"}, Rows: [][]string{{"y"}}},
	}
	data, err := EncodeCSV(sections)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "A\nx,1\n\nB\nh\ny\n" {
		t.Fatalf("unexpected csv %q", data)
	}
}

func TestCSVRowWidthMismatch(t *testing.T) {
	sections := []report.Section{{Title: "A", Header: []string{"a", "b"}, Rows: [][]string{{"1"}}}}
	if _, err := EncodeCSV(sections); err == nil {
		t.Fatalf("expected width error")
	}
}

func TestJSONTotalsMatchDataArrays(t *testing.T) {
	for _, def := range report.Catalog() {
		rep := buildReport(t, string(def.Kind))
		data, err := EncodeJSON(rep.Payload())
		if err != nil {
			t.Fatalf("%s: encode: %v", def.Kind, err)
		}

		var doc struct {
			ReportType string                     `json:"reportType"`
			Summary    map[string]any             `json:"summary"`
			Data       map[string]json.RawMessage `json:"data"`
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			t.Fatalf("%s: decode: %v", def.Kind, err)
		}
		if doc.ReportType != def.Title {
			t.Fatalf("%s: unexpected reportType %q", def.Kind, doc.ReportType)
		}

		var checked bool
		for key, value := range doc.Summary {
			if !strings.HasPrefix(key, "total") {
				continue
			}
			arrayKey := totalToDataKey(key)
			raw, ok := doc.Data[arrayKey]
			if !ok {
				t.Fatalf("%s: summary %s has no data array %s", def.Kind, key, arrayKey)
			}
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				t.Fatalf("%s: data.%s: %v", def.Kind, arrayKey, err)
			}
			if n, ok := value.(json.Number); !ok || n.String() != strconv.Itoa(len(items)) {
				t.Fatalf("%s: %s=%s but data.%s has %d items", def.Kind, key, value, arrayKey, len(items))
			}
			checked = true
		}
		if !checked {
			t.Fatalf("%s: no total in summary", def.Kind)
		}
	}
}

var totalKeys = map[string]string{
	"totalDrivers":            "drivers",
	"totalVehicles":           "vehicles",
	"totalShipments":          "shipments",
	"totalComplianceRecords":  "complianceRecords",
	"totalFuelRecords":        "fuelRecords",
	"totalMaintenanceRecords": "maintenanceRecords",
	"totalRoutes":             "routes",
}

func totalToDataKey(k string) string {
	return totalKeys[k]
}

func TestJSONKeyOrder(t *testing.T) {
	rep := buildReport(t, "fleet-summary")
	data, err := EncodeJSON(rep.Payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	keys := []string{`"reportType"`, `"generatedDate"`, `"generatedBy"`, `"period"`, `"summary"`, `"data"`, `"insights"`, `"recommendations"`}
	last := -1
	for _, k := range keys {
		idx := bytes.Index(data, []byte(k))
		if idx <= last {
			t.Fatalf("key %s out of order", k)
		}
		last = idx
	}
}

func TestYAMLEncodesPayload(t *testing.T) {
	rep := buildReport(t, "compliance")
	data, err := EncodeYAML(rep.Payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var doc struct {
		ReportType string         `yaml:"reportType"`
		Summary    map[string]any `yaml:"summary"`
		Data       struct {
			ComplianceRecords []map[string]any `yaml:"complianceRecords"`
		} `yaml:"data"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.ReportType != "Compliance Report" {
		t.Fatalf("unexpected reportType %q", doc.ReportType)
	}
	if len(doc.Data.ComplianceRecords) != len(rep.Data.ComplianceRecords) {
		t.Fatalf("compliance records lost")
	}
	if _, ok := doc.Data.ComplianceRecords[0]["daysUntilExpiry"]; !ok {
		t.Fatalf("expected daysUntilExpiry in yaml")
	}
}

func TestExportReleasesHandleOnce(t *testing.T) {
	rep := buildReport(t, "maintenance")
	notifier := &memoryNotifier{}
	audit := &memoryRecorder{}
	exp := NewExporter(notifier, audit)

	sink := &countingSink{}
	res, err := exp.Export(context.Background(), rep, FormatJSON, sink)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if sink.released != 1 || len(sink.delivered) != 1 {
		t.Fatalf("expected one delivery and one release, got %d/%d", len(sink.delivered), sink.released)
	}
	if res.ExportID != "exp-1" || res.SizeBytes != len(sink.delivered[0].Data) {
		t.Fatalf("unexpected result %+v", res)
	}
	if sink.delivered[0].MIME != "application/json" {
		t.Fatalf("unexpected mime %s", sink.delivered[0].MIME)
	}
	if len(notifier.successes) != 1 || len(notifier.alerts) != 0 {
		t.Fatalf("expected one success toast")
	}
	if len(audit.records) != 1 || audit.records[0].ReportType != "maintenance" {
		t.Fatalf("expected audit record, got %+v", audit.records)
	}

	sink = &countingSink{deliverErr: errors.New("disk full")}
	if _, err := exp.Export(context.Background(), rep, FormatCSV, sink); err == nil {
		t.Fatalf("expected delivery error")
	}
	if sink.released != 1 {
		t.Fatalf("expected release after failed delivery, got %d", sink.released)
	}
	if len(notifier.alerts) != 1 {
		t.Fatalf("expected failure alert")
	}
}

func TestExportSerializationPanic(t *testing.T) {
	notifier := &memoryNotifier{}
	exp := NewExporter(notifier, nil)
	exp.encode = func(Format, report.Report) ([]byte, error) { panic("cycle") }

	sink := &countingSink{}
	_, err := exp.Export(context.Background(), buildReport(t, "fleet-summary"), FormatJSON, sink)
	if !errors.Is(err, ErrSerialization) {
		t.Fatalf("expected serialization error, got %v", err)
	}
	if len(notifier.alerts) != 1 || sink.released != 0 || len(sink.delivered) != 0 {
		t.Fatalf("expected alert and no artifact")
	}
}

func TestExportAuditFailureStillSucceeds(t *testing.T) {
	exp := NewExporter(nil, &memoryRecorder{err: errors.New("db down")})
	res, err := exp.Export(context.Background(), buildReport(t, "fleet-summary"), FormatCSV, &countingSink{})
	if err != nil || res.ExportID != "" {
		t.Fatalf("expected export without audit id, got %+v %v", res, err)
	}
}

func TestBlobStoreRevoke(t *testing.T) {
	blobs := NewBlobStore()
	url := blobs.Create(Artifact{Name: "a.csv"})
	if !strings.HasPrefix(url, "blob:") || blobs.Len() != 1 {
		t.Fatalf("unexpected blob %s", url)
	}
	if err := blobs.Revoke(url); err != nil || blobs.Len() != 0 {
		t.Fatalf("revoke: %v", err)
	}
	if err := blobs.Revoke(url); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected not found on second revoke")
	}
}

func TestFileSinkDeliverAndRelease(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(nil, nil)
	res, err := exp.Export(context.Background(), buildReport(t, "route-optimization"), FormatCSV, FileSink{Dir: dir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, res.FileName))
	if err != nil || !bytes.HasPrefix(data, []byte("Route Optimization Report")) {
		t.Fatalf("unexpected file: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected temp file removed, found %d entries", len(entries))
	}
}
