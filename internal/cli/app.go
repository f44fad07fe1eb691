package cli

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/faqbot/internal/app"
	"github.com/alexanderramin/faqbot/internal/config"
	"github.com/alexanderramin/faqbot/internal/session"
)

// App holds what CLI commands need. Tests fill Assistant and Network
// directly; otherwise they are built from the loaded config before the
// first command runs.
type App struct {
	ConfigPath string
	Verbose    bool

	Config    *config.Config
	Log       zerolog.Logger
	Assistant app.Assistant
	Network   app.NetworkStatusUseCase
	Sessions  *session.Store

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	closers []func() error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Close releases resources opened during wiring.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		a.Config = config.DefaultConfig()
	}
	return a.Config
}
