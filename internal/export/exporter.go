package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"backend-fleetdesk/internal/report"
)

var ErrSerialization = errors.New("report serialization failed")

type Notifier interface {
	Success(ctx context.Context, message string)
	Alert(ctx context.Context, message string)
}

type Record struct {
	UserID     string
	ReportType string
	Format     string
	FileName   string
	SizeBytes  int
}

type Recorder interface {
	RecordExport(ctx context.Context, rec Record) (string, error)
}

type Result struct {
	FileName  string `json:"file_name"`
	Format    Format `json:"format"`
	SizeBytes int    `json:"size_bytes"`
	ExportID  string `json:"export_id,omitempty"`
}

type Exporter struct {
	notifier Notifier
	audit    Recorder
	encode   func(Format, report.Report) ([]byte, error)
	now      func() time.Time
}

// NewExporter wires the toast notifier and export audit log. Either may be
// nil.
func NewExporter(notifier Notifier, audit Recorder) *Exporter {
	return &Exporter{notifier: notifier, audit: audit, encode: Encode, now: time.Now}
}

// Export serializes rep, hands the artifact to sink and releases the sink
// handle exactly once. Failures are logged and raised as alerts.
func (e *Exporter) Export(ctx context.Context, rep report.Report, f Format, sink Sink) (Result, error) {
	data, err := e.safeEncode(f, rep)
	if err != nil {
		log.Printf("export %s as %s: %v", rep.Kind, f, err)
		e.alert(ctx, fmt.Sprintf("Failed to export %s. Please try again.", rep.Title))
		return Result{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	name := Filename(string(rep.Kind), f, e.now())
	handle, err := sink.Open(ctx, Artifact{Name: name, MIME: f.MIME(), Data: data})
	if err != nil {
		log.Printf("export %s: open sink: %v", name, err)
		e.alert(ctx, fmt.Sprintf("Failed to export %s. Please try again.", rep.Title))
		return Result{}, err
	}
	defer func() {
		if err := handle.Release(); err != nil {
			log.Printf("export %s: release: %v", name, err)
		}
	}()

	if err := handle.Deliver(ctx); err != nil {
		log.Printf("export %s: deliver: %v", name, err)
		e.alert(ctx, fmt.Sprintf("Failed to download %s.", name))
		return Result{}, err
	}

	res := Result{FileName: name, Format: f, SizeBytes: len(data)}
	if e.audit != nil {
		id, err := e.audit.RecordExport(ctx, Record{
			UserID:     rep.GeneratedBy,
			ReportType: string(rep.Kind),
			Format:     string(f),
			FileName:   name,
			SizeBytes:  len(data),
		})
		if err != nil {
			log.Printf("export %s: audit: %v", name, err)
		}
		res.ExportID = id
	}

	if e.notifier != nil {
		e.notifier.Success(ctx, fmt.Sprintf("%s exported as %s", rep.Title, name))
	}
	return res, nil
}

func (e *Exporter) safeEncode(f Format, rep report.Report) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.encode(f, rep)
}

func (e *Exporter) alert(ctx context.Context, msg string) {
	if e.notifier != nil {
		e.notifier.Alert(ctx, msg)
	}
}
