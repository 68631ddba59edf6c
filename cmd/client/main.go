// Command acadia is a terminal front end for the Acadia Safe API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"acadiasafe/internal/client"
	"acadiasafe/internal/config"
	"acadiasafe/internal/flows"
	"acadiasafe/internal/forms"
	"acadiasafe/internal/geo"
	"acadiasafe/internal/session"
	"acadiasafe/pkg/e"
	"acadiasafe/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// app is what every subcommand works with once the root command has run.
type app struct {
	cfg     *config.ClientConfig
	logger  *slog.Logger
	api     *client.Client
	session *session.Session

	verbose bool
	lat     float64
	lng     float64
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "acadia",
		Short:         "Acadia Safe campus safety client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().Float64Var(&a.lat, "lat", 0, "current latitude (campus fallback when unset)")
	root.PersistentFlags().Float64Var(&a.lng, "lng", 0, "current longitude (campus fallback when unset)")

	root.AddCommand(
		a.loginCmd(),
		a.signupCmd(),
		a.logoutCmd(),
		a.meCmd(),
		a.profileCmd(),
		a.contactsCmd(),
		a.sosCmd(),
		a.escortCmd(),
		a.walkCmd(),
		a.incidentCmd(),
		a.alertsCmd(),
		a.mapCmd(),
		a.seedCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(logger.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}.NewPrettyHandler(cmd.ErrOrStderr()))

	a.api = client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(a.logger),
	)
	a.session = session.New(a.api.Auth, session.NewFileStore(cfg.Home), a.logger)
	a.api.SetTokenSource(a.session)
	return nil
}

// signedIn restores the saved session and fails when there is none.
func (a *app) signedIn(ctx context.Context) error {
	a.session.Restore(ctx)
	if a.session.Status() != session.StatusAuthenticated {
		return e.WithDetail(e.ErrUnauthorized, "Not signed in. Run `acadia login` first.")
	}
	return nil
}

func (a *app) locator() flows.Locator {
	return flows.LocatorFunc(func(context.Context) (geo.Point, error) {
		if a.lat == 0 && a.lng == 0 {
			return geo.Point{}, errors.New("no position given")
		}
		return geo.Point{Lat: a.lat, Lng: a.lng}, nil
	})
}

func (a *app) position(ctx context.Context) geo.Point {
	return flows.Position(ctx, a.locator(), a.logger)
}

// flowOptions wires flows to this terminal.
func (a *app) flowOptions(out io.Writer) []flows.Option {
	return []flows.Option{
		flows.WithLocator(a.locator()),
		flows.WithLogger(a.logger),
		flows.WithContactPhoneRequired(a.cfg.RequireContactPhone),
		flows.WithNotifier(flows.NotifierFunc(func(n flows.Notice) {
			printNotice(out, n)
		})),
	}
}

var (
	bold  = color.New(color.Bold)
	red   = color.New(color.FgRed, color.Bold)
	green = color.New(color.FgGreen)
	faint = color.New(color.Faint)
)

func printNotice(w io.Writer, n flows.Notice) {
	if n.Level == flows.NoticeError {
		red.Fprintf(w, "%s: ", n.Title)
	} else {
		green.Fprintf(w, "%s: ", n.Title)
	}
	fmt.Fprintln(w, n.Message)
}

func printError(w io.Writer, err error) {
	var ve forms.ValidationErrors
	if errors.As(err, &ve) {
		red.Fprintln(w, "Please fix the following:")
		keys := make([]string, 0, len(ve))
		for k := range ve {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, ve[k])
		}
		return
	}

	var ae *session.AuthError
	if errors.As(err, &ae) {
		red.Fprintln(w, ae.Detail)
		return
	}

	red.Fprintln(w, client.DetailOf(err))
}
