package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"backend-fleetdesk/internal/config"
	"backend-fleetdesk/internal/fleet"
	"backend-fleetdesk/internal/report"

	"github.com/spf13/cobra"
)

type cli struct {
	out      io.Writer
	cfg      config.Config
	provider *fleet.Provider
	reports  *report.Service
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "fleetctl",
		Short: "Fleet report exports and dispatcher links",
		Long: `fleetctl builds fleet reports from the built-in dataset without a running
server.

Examples:
  fleetctl reports                          # List report kinds
  fleetctl export compliance --format json  # Write one report
  fleetctl export --all --out ./exports     # Write every report
  fleetctl link sms DRV-002 --body "ETA?"   # Print an sms: link
  fleetctl token dispatcher-1               # Issue a dev bearer token`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			c.cfg = config.Load()
			c.provider = fleet.NewProvider(time.Now())
			c.reports = report.NewService(c.provider, nil, c.cfg.GeneratedBy)
		},
	}
	root.SetOut(out)

	root.AddCommand(c.reportsCmd(), c.exportCmd(), c.linkCmd(), c.tokenCmd())
	return root
}

// printer is a notifier that writes toasts to the command output.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) Success(_ context.Context, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, "✓", msg)
}

func (p *printer) Alert(_ context.Context, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, "!", msg)
}

func (p *printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}
