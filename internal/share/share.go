package share

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"backend-fleetdesk/internal/report"
)

var (
	ErrUnavailable = errors.New("native share unavailable")
	ErrCancelled   = errors.New("share cancelled")
	ErrShareFailed = errors.New("share failed")
)

// summaryMetrics bounds how many summary values go into the share text.
const summaryMetrics = 3

type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ClipboardText is the plain text copied when native share is not possible.
func (p Payload) ClipboardText() string {
	return p.Title + "\n" + p.Text + "\n" + p.URL
}

func BuildPayload(rep report.Report, baseURL string) Payload {
	parts := make([]string, 0, summaryMetrics)
	for i, m := range rep.Summary {
		if i == summaryMetrics {
			break
		}
		parts = append(parts, fmt.Sprintf("%s: %v", m.Label, m.Value))
	}
	text := rep.Period
	if len(parts) > 0 {
		text += " | " + strings.Join(parts, ", ")
	}
	return Payload{
		Title: rep.Title,
		Text:  text,
		URL:   strings.TrimRight(baseURL, "/") + "/reports/" + string(rep.Kind),
	}
}

type Native interface {
	Share(ctx context.Context, userID string, p Payload) error
}

type Clipboard interface {
	Copy(ctx context.Context, userID, text string) error
	Read(ctx context.Context, userID string) (string, error)
}

type Notifier interface {
	Success(ctx context.Context, message string)
	Alert(ctx context.Context, message string)
}

type Outcome string

const (
	OutcomeShared    Outcome = "shared"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeCopied    Outcome = "copied"
)

// Pipeline tries native share first, then the clipboard. Only when both
// fail is the caller alerted.
type Pipeline struct {
	native    Native
	clipboard Clipboard
	notifier  Notifier
}

// NewPipeline accepts nil for any dependency. A nil native target counts as
// unavailable.
func NewPipeline(native Native, clipboard Clipboard, notifier Notifier) *Pipeline {
	return &Pipeline{native: native, clipboard: clipboard, notifier: notifier}
}

func (p *Pipeline) Share(ctx context.Context, userID string, payload Payload) (Outcome, error) {
	if p.native != nil {
		err := p.native.Share(ctx, userID, payload)
		switch {
		case err == nil:
			return OutcomeShared, nil
		case errors.Is(err, ErrCancelled):
			return OutcomeCancelled, nil
		case !errors.Is(err, ErrUnavailable):
			log.Printf("share %s: native: %v", payload.Title, err)
		}
	}

	if p.clipboard != nil {
		err := p.clipboard.Copy(ctx, userID, payload.ClipboardText())
		if err == nil {
			if p.notifier != nil {
				p.notifier.Success(ctx, "Report link copied to clipboard")
			}
			return OutcomeCopied, nil
		}
		log.Printf("share %s: clipboard: %v", payload.Title, err)
	}

	if p.notifier != nil {
		p.notifier.Alert(ctx, fmt.Sprintf("Unable to share %s", payload.Title))
	}
	return "", fmt.Errorf("%w: %s", ErrShareFailed, payload.Title)
}
