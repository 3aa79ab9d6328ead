package printing

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"time"
)

const (
	StyleID = "print-styles"

	// DefaultCleanupDelay gives the dialog time to capture the document
	// before the print style is removed.
	DefaultCleanupDelay = time.Second
)

const printCSS template.CSS = `@media print {
  .no-print { display: none !important; }
  table { page-break-inside: auto; }
  tr { page-break-inside: avoid; page-break-after: auto; }
  thead { display: table-header-group; }
  h1, h2 { page-break-after: avoid; }
}`

var ErrCancelled = errors.New("print cancelled")

type Dialog interface {
	Print(ctx context.Context, doc *Document) error
}

type Pipeline struct {
	dialog Dialog
	delay  time.Duration
	after  func(time.Duration, func())
}

func NewPipeline(dialog Dialog, delay time.Duration) *Pipeline {
	if delay <= 0 {
		delay = DefaultCleanupDelay
	}
	return &Pipeline{
		dialog: dialog,
		delay:  delay,
		after:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Print injects the print style, opens the dialog and schedules the style
// removal. Cleanup is scheduled whether the dialog succeeds, fails or
// panics. A cancelled dialog is not an error.
func (p *Pipeline) Print(ctx context.Context, doc *Document) (err error) {
	doc.InjectStyle(StyleID, printCSS)
	doc.setBusy(true)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("print %s: panic: %v", doc.Title, r)
			err = fmt.Errorf("print %s: %v", doc.Title, r)
		}
		p.after(p.delay, func() {
			doc.RemoveStyle(StyleID)
			doc.setBusy(false)
		})
	}()

	if err := p.dialog.Print(ctx, doc); err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		log.Printf("print %s: %v", doc.Title, err)
		return fmt.Errorf("print %s: %w", doc.Title, err)
	}
	return nil
}
