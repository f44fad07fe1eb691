package cli

import (
	"fmt"

	"github.com/alexanderramin/faqbot/internal/assistant"
	"github.com/alexanderramin/faqbot/internal/cache"
	"github.com/alexanderramin/faqbot/internal/intelligence"
	"github.com/alexanderramin/faqbot/internal/knowledge"
	"github.com/alexanderramin/faqbot/internal/llm"
	"github.com/alexanderramin/faqbot/internal/netgate"
	"github.com/alexanderramin/faqbot/internal/session"
)

// wire builds the assistant and its collaborators from a.Config.
func (a *App) wire() error {
	cfg := a.config()

	store, err := loadKnowledge(cfg.Knowledge.Dir)
	if err != nil {
		return err
	}

	probeCfg := cfg.Probe
	probeCfg.Address = cfg.ProbeAddress()
	gate := netgate.New(probeCfg, netgate.WithLogger(a.Log))

	var checker netgate.Checker = gate
	if probeCfg.CacheTTL > 0 {
		c, err := cache.New(cfg.Cache)
		if err != nil {
			return fmt.Errorf("opening probe cache: %w", err)
		}
		a.closers = append(a.closers, c.Close)
		checker = netgate.NewCachedGate(gate, c, probeCfg.CacheTTL, a.Log)
	}
	a.Network = checker

	rng := intelligence.NewRand(cfg.Seed)
	selOpts := []intelligence.SelectorOption{
		intelligence.WithRand(rng),
		intelligence.WithLogger(a.Log),
	}

	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(a.Log)
		}
		client, err := llm.NewClient(cfg.LLM, observer)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}
		escalator := intelligence.NewEscalator(client, store.DomainInfos())
		selOpts = append(selOpts, intelligence.WithEscalator(escalator, checker, cfg.LLM.ConfidenceThreshold))
		a.Log.Debug().
			Str("provider", string(cfg.LLM.Provider)).
			Str("model", cfg.LLM.Model).
			Str("probe", probeCfg.Address).
			Msg("llm escalation enabled")
	}

	a.Sessions = session.NewStore(
		session.WithIdleTTL(cfg.Session.IdleTTL),
		session.WithLogger(a.Log.With().Str("component", "sessions").Logger()),
	)
	a.Assistant = assistant.New(
		intelligence.NewSelector(store, selOpts...),
		assistant.WithEnhancer(intelligence.NewEnhancer(rng)),
		assistant.WithSessions(a.Sessions),
		assistant.WithLogger(a.Log),
	)
	return nil
}

func loadKnowledge(dir string) (*knowledge.Store, error) {
	if dir == "" {
		store, err := knowledge.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("loading embedded knowledge: %w", err)
		}
		return store, nil
	}
	store, err := knowledge.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge from %s: %w", dir, err)
	}
	return store, nil
}
