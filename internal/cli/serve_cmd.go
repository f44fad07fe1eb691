package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/mcpserver"
	"github.com/alexanderramin/faqbot/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the chat API, health check and (unless disabled) the MCP endpoint at /mcp.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.config().Server
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			deps := server.Deps{
				Assistant: app.Assistant,
				Network:   app.Network,
				Log:       app.Log,
			}
			if cfg.EnableMCP {
				mcp, err := mcpserver.NewServer(app.Assistant, app.Network)
				if err != nil {
					return err
				}
				deps.MCP = mcp.Handler()
			}

			srv, err := server.New(cfg, deps)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if app.Sessions != nil {
				go app.Sessions.RunJanitor(ctx, app.config().Session.JanitorInterval)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "faqbot listening on http://%s\n", cfg.Addr())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "override the listen host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the listen port")
	return cmd
}

// commandContext returns cmd's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
