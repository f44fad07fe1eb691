package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/mcpserver"
)

func newMCPCmd(app *App) *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the assistant as MCP tools",
		Long:  "Expose ask, greet and network_status as MCP tools over stdio, or over\nstreamable HTTP when --http is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := mcpserver.NewServer(app.Assistant, app.Network)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if httpAddr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "mcp listening on http://%s\n", httpAddr)
				return srv.RunHTTP(ctx, httpAddr)
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	return cmd
}
