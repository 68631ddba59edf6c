package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"acadiasafe/internal/config"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/flows"
	"acadiasafe/internal/forms"
)

const refresh = 250 * time.Millisecond

// waitUntil polls done until it reports true or ctx ends.
func waitUntil(ctx context.Context, done func() bool) bool {
	t := time.NewTicker(refresh)
	defer t.Stop()
	for {
		if done() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}
}

func (a *app) sosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "sos [medical|unsafe|crime|other]",
		Short:     "Send an emergency alert after a 3 second countdown (Ctrl-C cancels)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: domain.SOSCategories,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			f := flows.NewSOSFlow(a.api.SOS, a.flowOptions(out)...)
			defer f.Close()

			var err error
			if len(args) == 1 {
				err = f.Select(args[0])
			} else {
				err = f.SendNow()
			}
			if err != nil {
				return err
			}

			last := 0
			finished := waitUntil(ctx, func() bool {
				switch st := f.State().(type) {
				case flows.SOSCountdown:
					if st.Remaining != last && st.Remaining > 0 {
						last = st.Remaining
						red.Fprintf(out, "Sending SOS in %d...\n", st.Remaining)
					}
					return false
				default:
					return true
				}
			})
			if !finished {
				if cerr := f.CancelCountdown(); cerr == nil {
					fmt.Fprintln(out, "SOS cancelled")
					return nil
				}
				// too late to cancel; let the send finish
				waitUntil(context.Background(), func() bool {
					_, counting := f.State().(flows.SOSCountdown)
					return !counting
				})
			}

			sent, ok := f.State().(flows.SOSSent)
			if !ok {
				return fmt.Errorf("SOS was not sent; call Security at %s", f.SecurityPhone())
			}
			fmt.Fprintf(out, "Alert id %s. Security: %s\n", sent.Alert.ID, f.SecurityPhone())
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel your active SOS alert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			active, err := a.api.SOS.GetActive(ctx)
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active SOS alert")
				return nil
			}
			if err := a.api.SOS.Cancel(ctx, active.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "SOS alert cancelled")
			return nil
		},
	}
	cmd.AddCommand(cancel)
	return cmd
}

func (a *app) strategy() flows.AssignmentStrategy {
	if a.cfg.EscortStrategy == config.EscortSimulate {
		return flows.SimulatedAssignStrategy{Delay: a.cfg.AssignDelay}
	}
	return flows.PollStrategy{Every: a.cfg.PollInterval}
}

func (a *app) escortCmd() *cobra.Command {
	var f forms.Escort
	var wait bool

	cmd := &cobra.Command{
		Use:   "escort",
		Short: "Request a safety escort or show the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			flow := flows.NewEscortFlow(a.api.Escorts, a.strategy(), a.flowOptions(out)...)
			defer flow.Close()

			if err := flow.Resume(ctx); err != nil {
				return err
			}
			if _, ok := flow.State().(flows.EscortForm); ok {
				if err := flow.Submit(ctx, f); err != nil {
					return err
				}
			}
			printEscort(cmd, flow.State())

			if !wait {
				return nil
			}
			if _, ok := flow.State().(flows.EscortWaiting); ok {
				fmt.Fprintln(out, "Waiting for an officer (Ctrl-C to stop waiting)...")
				waitUntil(ctx, func() bool {
					_, waiting := flow.State().(flows.EscortWaiting)
					return !waiting
				})
				printEscort(cmd, flow.State())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Destination, "destination", "", "where you are going")
	cmd.Flags().StringVar(&f.PickupName, "pickup", "", "pickup description (default: current location)")
	cmd.Flags().StringVar(&f.Notes, "notes", "", "notes for the officer")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until an officer is assigned")

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel your escort request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			flow := flows.NewEscortFlow(a.api.Escorts, a.strategy(), a.flowOptions(cmd.OutOrStdout())...)
			defer flow.Close()

			if err := flow.Resume(ctx); err != nil {
				return err
			}
			if _, ok := flow.State().(flows.EscortForm); ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No active escort request")
				return nil
			}
			if err := flow.Cancel(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Escort request cancelled")
			return nil
		},
	}
	cmd.AddCommand(cancel)
	return cmd
}

func printEscort(cmd *cobra.Command, st flows.EscortState) {
	out := cmd.OutOrStdout()
	switch s := st.(type) {
	case flows.EscortWaiting:
		bold.Fprintln(out, "Finding an officer")
		fmt.Fprintf(out, "  request %s, estimated wait %d min\n", s.Request.ID, s.Request.EstimatedWait)
	case flows.EscortAssigned:
		name := domain.DefaultOfficerName
		if s.Request.OfficerName != nil {
			name = *s.Request.OfficerName
		}
		green.Fprintf(out, "%s is on the way\n", name)
		fmt.Fprintf(out, "  arriving in about %d min\n", s.Request.EstimatedWait)
	default:
		faint.Fprintln(out, "No active escort request")
	}
}

func (a *app) walkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Share your walk with trusted contacts",
	}

	var contactIDs []string
	var minutes int
	var follow bool
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a friend walk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			flow := flows.NewFriendWalkFlow(a.api.FriendWalk, a.api.Contacts, a.flowOptions(out)...)
			defer flow.Close()

			if err := flow.Load(ctx); err != nil {
				return err
			}
			if _, active := flow.State().(flows.WalkActive); !active {
				for _, raw := range contactIDs {
					id, err := uuid.Parse(raw)
					if err != nil {
						return fmt.Errorf("invalid contact id %q", raw)
					}
					if err := flow.ToggleContact(id); err != nil {
						return err
					}
				}
				if err := flow.SetDuration(minutes); err != nil {
					return err
				}
				if err := flow.Start(ctx); err != nil {
					return err
				}
			}
			printWalk(cmd, flow.State())

			if !follow {
				return nil
			}
			// Position pushes and auto-completion run while following.
			waitUntil(ctx, func() bool {
				_, active := flow.State().(flows.WalkActive)
				return !active
			})
			if _, active := flow.State().(flows.WalkActive); active {
				fmt.Fprintln(out, "Stopped following; the walk is still active")
			}
			return nil
		},
	}
	start.Flags().StringSliceVar(&contactIDs, "contact", nil, "trusted contact id (repeatable)")
	start.Flags().IntVar(&minutes, "duration", flows.DefaultWalkMinutes, "15, 30, 60 or 0 for until stopped")
	start.Flags().BoolVar(&follow, "follow", false, "stay attached, share position and finish when time is up")

	status := &cobra.Command{
		Use:  "status",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := a.loadWalk(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()
			printWalk(cmd, flow.State())
			return nil
		},
	}

	extend := &cobra.Command{
		Use:   "extend",
		Short: fmt.Sprintf("Add %d minutes to the active walk", domain.WalkExtendMinutes),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := a.loadWalk(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()
			if err := flow.Extend(cmd.Context()); err != nil {
				return err
			}
			printWalk(cmd, flow.State())
			return nil
		},
	}

	complete := &cobra.Command{
		Use:   "complete",
		Short: "Tell your contacts you arrived safely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := a.loadWalk(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()
			return flow.Complete(cmd.Context())
		},
	}

	cmd.AddCommand(start, status, extend, complete)
	return cmd
}

func (a *app) loadWalk(cmd *cobra.Command) (*flows.FriendWalkFlow, error) {
	if err := a.signedIn(cmd.Context()); err != nil {
		return nil, err
	}
	flow := flows.NewFriendWalkFlow(a.api.FriendWalk, a.api.Contacts, a.flowOptions(cmd.OutOrStdout())...)
	if err := flow.Load(cmd.Context()); err != nil {
		flow.Close()
		return nil, err
	}
	return flow, nil
}

func printWalk(cmd *cobra.Command, st flows.WalkState) {
	out := cmd.OutOrStdout()
	switch s := st.(type) {
	case flows.WalkActive:
		bold.Fprintf(out, "Friend walk %s active\n", s.Walk.ID)
		if s.Walk.Bounded() {
			fmt.Fprintf(out, "  %s remaining\n", s.Remaining)
		} else {
			fmt.Fprintln(out, "  until stopped")
		}
		fmt.Fprintf(out, "  sharing with %d contact(s)\n", len(s.Walk.ContactIDs))
	case flows.WalkSetup:
		faint.Fprintln(out, "No active friend walk")
		printContacts(out, s.Contacts)
	}
}

func (a *app) incidentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "Report or review incidents",
	}

	var (
		category, description, location, phone string
		photos                                 []string
		anonymous, wantsContact                bool
	)
	report := &cobra.Command{
		Use:   "report",
		Short: "Submit an incident report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			flow := flows.NewIncidentFlow(a.api.Incidents, a.flowOptions(out)...)

			for _, set := range []error{
				flow.SetCategory(category),
				flow.SetDescription(description),
				flow.SetLocationName(location),
				flow.SetAnonymous(anonymous),
				flow.SetContact(wantsContact, phone),
			} {
				if set != nil {
					return set
				}
			}
			for _, path := range photos {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read photo: %w", err)
				}
				if err := flow.AddPhoto(raw); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			if err := a.signedIn(ctx); err != nil {
				return err
			}
			if err := flow.Submit(ctx); err != nil {
				return err
			}
			sub := flow.State().(flows.IncidentSubmitted)
			fmt.Fprintf(out, "Reference #%s\n", sub.Reference)
			return nil
		},
	}
	report.Flags().StringVar(&category, "type", "", "one of: Suspicious Activity, Theft, Harassment, Property Damage, Safety Hazard, Other")
	report.Flags().StringVar(&description, "description", "", "what happened")
	report.Flags().StringVar(&location, "location", "", "where it happened")
	report.Flags().StringSliceVar(&photos, "photo", nil, "photo file, up to 3 (repeatable)")
	report.Flags().BoolVar(&anonymous, "anonymous", false, "submit without your name")
	report.Flags().BoolVar(&wantsContact, "contact", false, "ask Security to follow up")
	report.Flags().StringVar(&phone, "contact-phone", "", "phone for follow-up")

	list := &cobra.Command{
		Use:   "list",
		Short: "List your reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signedIn(cmd.Context()); err != nil {
				return err
			}
			reports, err := a.api.Incidents.Mine(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				faint.Fprintln(out, "No reports yet")
			}
			for _, r := range reports {
				fmt.Fprintf(out, "#%s  %-20s %-10s %s\n", domain.ReferenceCode(r.ID), r.IncidentType, r.Status, r.CreatedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	cmd.AddCommand(report, list)
	return cmd
}
