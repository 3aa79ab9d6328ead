package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"backend-fleetdesk/internal/report"

	"gopkg.in/yaml.v3"
)

// EncodeCSV writes each section as a title row, an optional header row and
// its data rows, with a blank row between sections. Fields are quoted per
// RFC 4180 where needed.
func EncodeCSV(sections []report.Section) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i, s := range sections {
		if i > 0 {
			if err := w.Write(nil); err != nil {
				return nil, err
			}
		}
		if err := w.Write([]string{s.Title}); err != nil {
			return nil, err
		}
		if s.Header != nil {
			if err := w.Write(s.Header); err != nil {
				return nil, err
			}
		}
		for _, row := range s.Rows {
			if s.Header != nil && len(row) != len(s.Header) {
				return nil, fmt.Errorf("section %q: row has %d fields, header has %d", s.Title, len(row), len(s.Header))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func EncodeJSON(p report.Payload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func EncodeYAML(p report.Payload) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Encode(f Format, r report.Report) ([]byte, error) {
	switch f {
	case FormatCSV:
		return EncodeCSV(r.Sections)
	case FormatJSON:
		return EncodeJSON(r.Payload())
	case FormatYAML:
		return EncodeYAML(r.Payload())
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}
