package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/flows"
)

var alertColors = map[domain.AlertType]*color.Color{
	domain.AlertEmergency: color.New(color.FgRed, color.Bold),
	domain.AlertAdvisory:  color.New(color.FgYellow),
	domain.AlertInfo:      color.New(color.FgCyan),
}

func (a *app) alertsCmd() *cobra.Command {
	var alertType string
	cmd := &cobra.Command{
		Use:   "alerts [id]",
		Short: "List campus alerts or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			f := flows.NewAlertsFlow(a.api.Alerts)

			if len(args) == 1 {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid alert id %q", args[0])
				}
				alert, err := f.Open(ctx, id)
				if err != nil {
					return err
				}
				printAlert(out, *alert, true)
				return nil
			}

			if err := f.Refresh(ctx); err != nil {
				return err
			}
			list := f.Alerts()
			if alertType != "" {
				list = f.ByType(domain.AlertType(alertType))
			}
			if len(list) == 0 {
				faint.Fprintln(out, "No alerts")
			}
			for _, alert := range list {
				printAlert(out, alert, false)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&alertType, "type", "", "emergency, advisory or info")
	return cmd
}

func printAlert(w io.Writer, alert domain.CampusAlert, full bool) {
	c, ok := alertColors[alert.AlertType]
	if !ok {
		c = bold
	}
	c.Fprintf(w, "[%s] %s\n", alert.AlertType, alert.Title)
	faint.Fprintf(w, "  %s  %s\n", alert.ID, alert.CreatedAt.Local().Format(time.DateTime))
	if full {
		fmt.Fprintf(w, "\n%s\n", alert.Message)
	}
}

func (a *app) mapCmd() *cobra.Command {
	var locType string
	var limit int
	cmd := &cobra.Command{
		Use:   "map",
		Short: "List campus safety locations nearest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			f := flows.NewMapFlow(a.api.Locations)
			if err := f.Load(ctx); err != nil {
				return err
			}
			if locType != "" {
				t := domain.LocationType(locType)
				if err := f.Filter(&t); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			near := f.Nearby(a.position(ctx))
			if limit > 0 && len(near) > limit {
				near = near[:limit]
			}
			if len(near) == 0 {
				faint.Fprintln(out, "No locations; try `acadia seed`")
			}
			for _, n := range near {
				fmt.Fprintf(out, "%7s  %-30s %s\n", n.Distance, n.Location.Name, n.Location.LocationType)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&locType, "type", "", "emergency_phone, aed, safe_building, security_office or parking")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo alerts and campus locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d alerts, %d locations)\n", resp.Message, resp.Alerts, resp.Locations)
			return nil
		},
	}
}
