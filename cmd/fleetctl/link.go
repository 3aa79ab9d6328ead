package main

import (
	"fmt"

	"backend-fleetdesk/internal/deeplink"
	"backend-fleetdesk/internal/fleet"

	"github.com/spf13/cobra"
)

func (c *cli) linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print contact and directions deep links",
		Long: `Link prints tel:, sms:, mailto: and navigation links. A driver id
(DRV-001) is resolved to the driver's phone or email, anything else is used
as given.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tel <driver-id|phone>",
		Short: "Print a tel: link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, deeplink.Tel(c.phone(args[0])))
			return nil
		},
	})

	var body string
	sms := &cobra.Command{
		Use:   "sms <driver-id|phone>",
		Short: "Print an sms: link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, deeplink.SMS(c.phone(args[0]), body))
			return nil
		},
	}
	sms.Flags().StringVar(&body, "body", "", "Message body")
	cmd.AddCommand(sms)

	var subject string
	mailto := &cobra.Command{
		Use:   "mailto <driver-id|address>",
		Short: "Print a mailto: link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := args[0]
			if d, ok := c.provider.Driver(addr); ok {
				if d.Email == "" {
					return fmt.Errorf("driver %s has no email", d.ID)
				}
				addr = d.Email
			}
			link := deeplink.Mailto(addr, subject)
			if link == "" {
				return fmt.Errorf("no email address given")
			}
			fmt.Fprintln(c.out, link)
			return nil
		},
	}
	mailto.Flags().StringVar(&subject, "subject", "", "Mail subject")
	cmd.AddCommand(mailto)

	var nav string
	directions := &cobra.Command{
		Use:   "directions <vehicle-id>",
		Short: "Print directions from a vehicle to its destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := c.vehicle(args[0])
			if !ok {
				return fmt.Errorf("vehicle %s not found", args[0])
			}
			navs := deeplink.Navigators()
			if nav != "" {
				n, err := deeplink.ByName(nav)
				if err != nil {
					return err
				}
				navs = []deeplink.Navigator{n}
			}
			for _, n := range navs {
				fmt.Fprintf(c.out, "%-8s %s\n", n.Name(), n.Directions(v.Position, v.Destination))
			}
			return nil
		},
	}
	directions.Flags().StringVar(&nav, "nav", "", "Navigator: apple | android | web | waze (default: all)")
	cmd.AddCommand(directions)

	return cmd
}

func (c *cli) phone(arg string) string {
	if d, ok := c.provider.Driver(arg); ok {
		return d.Phone
	}
	return arg
}

func (c *cli) vehicle(id string) (fleet.VehicleRecord, bool) {
	for _, v := range c.provider.Vehicles() {
		if v.ID == id {
			return v, true
		}
	}
	return fleet.VehicleRecord{}, false
}
