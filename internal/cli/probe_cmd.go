package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/cli/formatter"
	"github.com/alexanderramin/faqbot/internal/netgate"
)

func newProbeCmd(app *App) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check connectivity to the AI backend",
		Long:  "Dial the configured AI endpoint and report median latency and the availability verdict.\nWith --watch, keep probing every --interval until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Network == nil {
				return errors.New("network probing is not configured")
			}
			out := cmd.OutOrStdout()

			checker, ok := app.Network.(netgate.Checker)
			if !watch {
				var st netgate.Status
				if ok {
					st = netgate.Fresh(commandContext(cmd), checker)
				} else {
					st = app.Network.Probe(commandContext(cmd))
				}
				fmt.Fprint(out, formatter.FormatNetworkStatus(st))
				return nil
			}
			if !ok {
				return errors.New("network status does not support watching")
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			netgate.Watch(ctx, checker, interval, func(st netgate.Status) {
				fmt.Fprintf(out, "%s  %s", formatter.Dim(st.CheckedAt.Format(time.TimeOnly)), formatter.FormatNetworkStatus(st))
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep probing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "time between probes with --watch")
	return cmd
}
