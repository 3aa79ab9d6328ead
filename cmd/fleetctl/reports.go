package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"backend-fleetdesk/internal/report"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) reportsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := report.Catalog()
			switch format {
			case "table":
				tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SLUG\tTITLE\tPERIOD")
				for _, d := range defs {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Kind, d.Title, d.Period)
				}
				return tw.Flush()
			case "json":
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(defs)
			case "yaml":
				enc := yaml.NewEncoder(c.out)
				defer enc.Close()
				return enc.Encode(defs)
			default:
				return fmt.Errorf("invalid format: %q (expected table, json, or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table | json | yaml")
	return cmd
}
