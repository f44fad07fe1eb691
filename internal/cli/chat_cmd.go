package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/app"
	"github.com/alexanderramin/faqbot/internal/cli/formatter"
	"github.com/alexanderramin/faqbot/internal/session"
)

func newChatCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long:  "Chat with the assistant. Uses a full-screen prompt on a terminal and\nreads one question per line otherwise.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, app, sessionID)
		},
	}

	sessionFlag(cmd.Flags(), &sessionID, "session id (new session when empty)")
	return cmd
}

func runChat(cmd *cobra.Command, a *App, sessionID string) error {
	if sessionID == "" {
		sessionID = session.NewID()
	}
	ctx := commandContext(cmd)

	if !a.interactive() {
		return runLineChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.Assistant, sessionID, a.Verbose)
	}

	p := tea.NewProgram(newChatView(ctx, a.Assistant, sessionID, a.Verbose),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// runLineChat answers one question per input line until EOF or a quit
// command, for pipes and dumb terminals.
func runLineChat(ctx context.Context, in io.Reader, out io.Writer, a app.Assistant, sessionID string, verbose bool) error {
	fmt.Fprintln(out, a.Greet())

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch parseChatCommand(line) {
		case chatQuit:
			fmt.Fprintln(out, a.Farewell(sessionID))
			return nil
		case chatReset:
			a.Reset(sessionID)
			fmt.Fprintln(out, "Conversation reset.")
		case chatHistory:
			fmt.Fprint(out, formatter.FormatHistory(sessionID, a.History(sessionID)))
		default:
			resp := a.Respond(ctx, sessionID, line)
			fmt.Fprintln(out, formatter.FormatResponse(resp, verbose))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(out, a.Farewell(sessionID))
	return nil
}
