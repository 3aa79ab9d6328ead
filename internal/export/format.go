package export

import (
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts csv, json, yaml or yml, case-insensitively. An empty
// string selects CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected csv, json, or yaml)", s)
	}
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) MIME() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/csv"
	}
}

// Filename builds <slug>-report-YYYY-MM-DD.<ext>.
func Filename(slug string, f Format, at time.Time) string {
	return fmt.Sprintf("%s-report-%s.%s", strings.TrimSuffix(slug, "-report"), at.Format("2006-01-02"), f.Extension())
}
