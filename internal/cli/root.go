package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/config"
	"github.com/alexanderramin/faqbot/internal/observability"
)

// skipWire marks commands that run without an assistant.
const skipWire = "faqbot/skip-wire"

// NewRootCmd creates the top-level "faqbot" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "faqbot",
		Short:         "Rule-based FAQ assistant for ConfigMaster",
		Long:          "Dinesh Assistant answers questions about ConfigMaster from a curated\nknowledge base, escalating to an LLM when one is configured and reachable.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWire] == "true" {
				return nil
			}
			return app.prepare()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app, "")
		},
	}

	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", os.Getenv("FAQBOT_CONFIG"), "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "show confidence and stage for each answer")

	root.AddCommand(
		newServeCmd(app),
		newAskCmd(app),
		newChatCmd(app),
		newProbeCmd(app),
		newMCPCmd(app),
		newConfigCmd(app),
	)

	return root
}

// prepare loads config and wires the assistant unless a test already did.
func (a *App) prepare() error {
	if a.Assistant != nil {
		return nil
	}

	if a.Config == nil {
		cfg, err := config.Load(a.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.Config = cfg
	}
	a.Log = observability.NewLogger(a.Config.Log, os.Stderr)

	return a.wire()
}
