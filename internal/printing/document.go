package printing

import (
	"html/template"
	"sort"
	"sync"
	"time"

	"backend-fleetdesk/internal/report"
)

type Style struct {
	ID  string
	CSS template.CSS
}

// Document is a printable rendering of one report. Styles are injected and
// removed by the print pipeline while the dialog is open.
type Document struct {
	Title       string
	Period      string
	GeneratedAt time.Time
	GeneratedBy string
	Sections    []report.Section
	Insights    []string

	mu     sync.Mutex
	styles map[string]template.CSS
	busy   bool
}

func NewDocument(rep report.Report) *Document {
	return &Document{
		Title:       rep.Title,
		Period:      rep.Period,
		GeneratedAt: rep.GeneratedAt,
		GeneratedBy: rep.GeneratedBy,
		Sections:    rep.Sections,
		Insights:    rep.Insights,
		styles:      map[string]template.CSS{},
	}
}

func (d *Document) InjectStyle(id string, css template.CSS) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles[id] = css
}

func (d *Document) RemoveStyle(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.styles, id)
}

func (d *Document) HasStyle(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.styles[id]
	return ok
}

// Styles returns the injected styles ordered by id.
func (d *Document) Styles() []Style {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Style, 0, len(d.styles))
	for id, css := range d.styles {
		out = append(out, Style{ID: id, CSS: css})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Busy reports whether a print is in progress. Print controls stay disabled
// while it is set.
func (d *Document) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

func (d *Document) setBusy(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy = v
}
