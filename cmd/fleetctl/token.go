package main

import (
	"fmt"
	"time"

	"backend-fleetdesk/internal/auth"

	"github.com/spf13/cobra"
)

func (c *cli) tokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.IssueToken(c.cfg.JWTSecret, args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "Token lifetime")
	return cmd
}
