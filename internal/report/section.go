package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Section is one titled table. A nil Header means the section has no
// column header row.
type Section struct {
	Title  string     `json:"title"`
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows"`
}

type column[T any] struct {
	header string
	value  func(T) string
}

func table[T any](title string, cols []column[T], records []T) Section {
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.header
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.value(rec)
		}
		rows = append(rows, row)
	}
	return Section{Title: title, Header: header, Rows: rows}
}

func summarySection(s Summary) Section {
	rows := make([][]string, 0, len(s))
	for _, m := range s {
		rows = append(rows, []string{m.Label, formatValue(m.Value)})
	}
	return Section{Title: "Summary", Header: []string{"Metric", "Value"}, Rows: rows}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func integer(v int) string {
	return strconv.Itoa(v)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func date(t time.Time) string {
	return t.Format("2006-01-02")
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func list(values []string) string {
	return strings.Join(values, "; ")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return num(x)
	case int:
		return integer(x)
	case bool:
		return yesNo(x)
	case time.Time:
		return stamp(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
