package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"backend-fleetdesk/internal/export"
	"backend-fleetdesk/internal/report"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *cli) exportCmd() *cobra.Command {
	var (
		format string
		outDir string
		by     string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "export [slug]",
		Short: "Export a report to a file",
		Long: `Export writes a report as CSV, JSON or YAML into the output directory.
Files are named <slug>-report-YYYY-MM-DD.<ext>.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return errors.New("--all takes no report slug")
			}
			if !all && len(args) != 1 {
				return errors.New("expected one report slug or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			slugs := args
			if all {
				slugs = nil
				for _, d := range report.Catalog() {
					slugs = append(slugs, string(d.Kind))
				}
			}

			p := &printer{out: c.out}
			exp := export.NewExporter(p, nil)
			sink := export.FileSink{Dir: outDir}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(4)
			for _, slug := range slugs {
				g.Go(func() error {
					rep, err := c.reports.Build(slug, by)
					if err != nil {
						return fmt.Errorf("%s: %w", slug, err)
					}
					res, err := exp.Export(ctx, rep, f, sink)
					if err != nil {
						return fmt.Errorf("%s: %w", slug, err)
					}
					p.Printf("%s (%d bytes)\n", filepath.Join(outDir, res.FileName), res.SizeBytes)
					return nil
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv | json | yaml")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	cmd.Flags().StringVar(&by, "by", "", "Generated-by name (default: REPORT_GENERATED_BY)")
	cmd.Flags().BoolVar(&all, "all", false, "Export every report")
	return cmd
}
