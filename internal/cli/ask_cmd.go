package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/cli/formatter"
)

func newAskCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Ask a single question",
		Example: `  faqbot ask "how do I install ConfigMaster?"
  faqbot ask -v what is mcp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("question must not be empty")
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp := app.Assistant.Respond(commandContext(cmd), sessionID, query)
			stop()

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResponse(resp, app.Verbose))
			return nil
		},
	}

	sessionFlag(cmd.Flags(), &sessionID, "session id (default session when empty)")
	return cmd
}
