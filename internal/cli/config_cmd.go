package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/faqbot/internal/config"
	"github.com/alexanderramin/faqbot/internal/llm"
)

const defaultConfigFile = "faqbot.yaml"

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: map[string]string{skipWire: "true"},
	}
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var (
		out      string
		force    bool
		defaults bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file",
		Long:        "Write a YAML config file, asking for the common settings in an interactive form.\nUse --defaults to skip the form.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipWire: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := out
			if path == "" {
				path = defaultConfigFile
				if app.ConfigPath != "" {
					path = app.ConfigPath
				}
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			cfg := config.DefaultConfig()
			if !defaults && app.interactive() {
				answers := answersFromConfig(cfg)
				if err := configForm(answers).Run(); err != nil {
					return err
				}
				if err := answers.apply(cfg); err != nil {
					return err
				}
			}

			// The API key is never written, so it is expected to be missing here.
			missingKey := false
			if err := cfg.Validate(); err != nil {
				if !errors.Is(err, llm.ErrMissingAPIKey) {
					return err
				}
				missingKey = true
			}
			if err := config.Write(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			if missingKey {
				fmt.Fprintln(cmd.OutOrStdout(), "Set OPENAI_API_KEY before starting faqbot.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write (default faqbot.yaml or --config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "write defaults without prompting")
	return cmd
}

// configAnswers holds form values as strings, the way huh binds them.
type configAnswers struct {
	Port       string
	LogLevel   string
	LLMEnabled bool
	Provider   string
	Endpoint   string
	Model      string
}

func answersFromConfig(cfg *config.Config) *configAnswers {
	return &configAnswers{
		Port:       strconv.Itoa(cfg.Server.Port),
		LogLevel:   cfg.Log.Level,
		LLMEnabled: cfg.LLM.Enabled,
		Provider:   string(cfg.LLM.Provider),
		Endpoint:   cfg.LLM.Endpoint,
		Model:      cfg.LLM.Model,
	}
}

func (a *configAnswers) apply(cfg *config.Config) error {
	port, err := strconv.Atoi(strings.TrimSpace(a.Port))
	if err != nil {
		return fmt.Errorf("invalid port %q", a.Port)
	}
	cfg.Server.Port = port
	cfg.Log.Level = a.LogLevel
	cfg.LLM.Enabled = a.LLMEnabled
	cfg.LLM.Provider = llm.Provider(a.Provider)
	if a.Endpoint != "" {
		cfg.LLM.Endpoint = strings.TrimSpace(a.Endpoint)
	}
	if a.Model != "" {
		cfg.LLM.Model = strings.TrimSpace(a.Model)
	}
	return nil
}

func configForm(a *configAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("HTTP port").
				Value(&a.Port).
				Validate(validatePort),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&a.LogLevel),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Escalate hard questions to an LLM?").
				Value(&a.LLMEnabled),
			huh.NewSelect[string]().
				Title("Provider").
				Options(
					huh.NewOption("Ollama (local)", string(llm.ProviderOllama)),
					huh.NewOption("OpenAI", string(llm.ProviderOpenAI)),
				).
				Value(&a.Provider),
			huh.NewInput().
				Title("Endpoint").
				Description("Blank keeps the provider default").
				Value(&a.Endpoint),
			huh.NewInput().
				Title("Model").
				Value(&a.Model),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return errors.New("enter a port between 1 and 65535")
	}
	return nil
}
