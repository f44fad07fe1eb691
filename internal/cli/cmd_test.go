package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/faqbot/internal/assistant"
	"github.com/alexanderramin/faqbot/internal/cache"
	"github.com/alexanderramin/faqbot/internal/config"
	"github.com/alexanderramin/faqbot/internal/intelligence"
	"github.com/alexanderramin/faqbot/internal/netgate"
	"github.com/alexanderramin/faqbot/internal/testutil"
)

// testApp wires an App around the embedded knowledge base with no LLM.
func testApp(t *testing.T) *App {
	t.Helper()
	sel := intelligence.NewSelector(testutil.Knowledge(t), intelligence.WithRand(testutil.FixedRand(0)))
	return &App{
		Config:    config.DefaultConfig(),
		Log:       zerolog.Nop(),
		Assistant: assistant.New(sel, assistant.WithEnhancer(intelligence.NewEnhancer(testutil.FixedRand(0)))),
		Network:   &testutil.StaticGate{Up: true},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWith(t, context.Background(), app, "", args...)
}

func executeCmdWith(t *testing.T, ctx context.Context, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func TestAsk(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "ask", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello!")
	assert.NotContains(t, out, "stage greeting")
}

func TestAsk_JoinsArgsAndVerbose(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "ask", "-v", "xyzzy", "plugh")
	require.NoError(t, err)
	assert.Contains(t, out, intelligence.FallbackPhrase)
	assert.Contains(t, out, "20%")
	assert.Contains(t, out, "stage fallback")
}

func TestAsk_Session(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "ask", "--session", "s9", "hello")
	require.NoError(t, err)

	turns := app.Assistant.History("s9")
	require.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].Query)
}

func TestAsk_RejectsBlankQuestion(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "ask", "   ")
	assert.ErrorContains(t, err, "must not be empty")

	_, err = executeCmd(t, testApp(t), "ask")
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "ONLINE")
	assert.Contains(t, out, "static:0")
	assert.Contains(t, out, "10.0ms")
}

func TestProbe_Offline(t *testing.T) {
	app := testApp(t)
	app.Network = &testutil.StaticGate{Up: false}

	out, err := executeCmd(t, app, "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "OFFLINE")
}

func TestProbe_WatchStopsOnCancel(t *testing.T) {
	app := testApp(t)
	gate := &testutil.StaticGate{Up: true}
	app.Network = gate

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeCmdWith(t, ctx, app, "", "probe", "--watch", "--interval", "10ms")
	require.NoError(t, err)
	assert.Equal(t, 1, gate.Probes())
	assert.Equal(t, 1, strings.Count(out, "ONLINE"))
}

func TestNetworkCheck_IgnoresCachedVerdict(t *testing.T) {
	dials := 0
	g := netgate.New(netgate.Config{Address: "cached.test:443", Attempts: 1}, netgate.WithProbe(
		func(context.Context, string) (time.Duration, error) {
			dials++
			return 10 * time.Millisecond, nil
		}))
	store := cache.NewMemoryClient(10)
	defer store.Close()
	cg := netgate.NewCachedGate(g, store, time.Hour, zerolog.Nop())
	require.True(t, cg.Available(context.Background()))

	app := testApp(t)
	app.Network = cg
	out, err := executeCmd(t, app, "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "ONLINE")
	assert.Equal(t, 2, dials, "a fresh cached verdict is not reused")
}

func TestProbe_RequiresNetwork(t *testing.T) {
	app := testApp(t)
	app.Network = nil

	_, err := executeCmd(t, app, "probe")
	assert.ErrorContains(t, err, "not configured")
}

func TestChat_LineMode(t *testing.T) {
	app := testApp(t)
	stdin := "hello\n\nxyzzy\n/history\nbye\nnever answered\n"

	out, err := executeCmdWith(t, context.Background(), app, stdin, "chat", "--session", "line")
	require.NoError(t, err)

	assert.Contains(t, out, "Dinesh Assistant")
	assert.Contains(t, out, "Hello!")
	assert.Contains(t, out, intelligence.FallbackPhrase)
	assert.Contains(t, out, "HISTORY LINE")
	assert.Contains(t, out, "We've had 2 helpful interactions")
	assert.NotContains(t, out, "never answered")
	assert.Empty(t, app.Assistant.History("line"), "farewell resets the session")
}

func TestChat_LineModeEOFSaysFarewell(t *testing.T) {
	out, err := executeCmdWith(t, context.Background(), testApp(t), "hello\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "We've had 1 helpful interactions")
}

func TestChat_LineModeReset(t *testing.T) {
	app := testApp(t)

	out, err := executeCmdWith(t, context.Background(), app, "hello\n/reset\n", "chat", "-s", "r")
	require.NoError(t, err)
	assert.Contains(t, out, "Conversation reset.")
	assert.Contains(t, out, "We've had 0 helpful interactions")
}

func TestRootRunsChat(t *testing.T) {
	out, err := executeCmdWith(t, context.Background(), testApp(t), "hello\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello!")
}

func TestConfigInit_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "faqbot.yaml")
	app := &App{}

	out, err := executeCmd(t, app, "config", "init", "--defaults", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.Nil(t, app.Assistant, "config init does not wire the assistant")

	cfg, err := config.Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Server.Port, cfg.Server.Port)

	_, err = executeCmd(t, &App{}, "config", "init", "--defaults", "-o", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = executeCmd(t, &App{}, "config", "init", "--defaults", "--force", "-o", path)
	assert.NoError(t, err)
}

func TestConfigInit_UsesConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	_, err := executeCmd(t, &App{}, "--config", path, "config", "init", "--defaults")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigAnswers_Apply(t *testing.T) {
	cfg := config.DefaultConfig()
	a := answersFromConfig(cfg)
	a.Port = " 9090 "
	a.LLMEnabled = true
	a.Provider = "openai"
	a.Model = "gpt-4o-mini"

	require.NoError(t, a.apply(cfg))
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)

	a.Port = "nope"
	assert.Error(t, a.apply(cfg))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("8000"))
	assert.Error(t, validatePort("0"))
	assert.Error(t, validatePort("70000"))
	assert.Error(t, validatePort("abc"))
}

func TestPrepare_WiresFromConfig(t *testing.T) {
	t.Run("rules only", func(t *testing.T) {
		app := &App{Config: config.DefaultConfig()}
		require.NoError(t, app.prepare())
		t.Cleanup(func() { _ = app.Close() })

		assert.NotNil(t, app.Assistant)
		assert.NotNil(t, app.Network)
		assert.NotNil(t, app.Sessions)

		resp := app.Assistant.Respond(context.Background(), "", "hello")
		assert.Equal(t, intelligence.GreetingText, resp.Text)
		assert.Equal(t, 1, app.Sessions.Len())
	})

	t.Run("llm enabled with cached probe", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.LLM.Enabled = true
		cfg.Probe.CacheTTL = 30 * time.Second
		app := &App{Config: cfg}

		require.NoError(t, app.prepare())
		assert.Len(t, app.closers, 1)
		assert.NoError(t, app.Close())
		assert.Empty(t, app.closers)
	})

	t.Run("bad knowledge dir", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Knowledge.Dir = filepath.Join(t.TempDir(), "nope")
		app := &App{Config: cfg}

		assert.ErrorContains(t, app.prepare(), "loading knowledge")
	})

	t.Run("pre-wired app is left alone", func(t *testing.T) {
		app := testApp(t)
		before := app.Assistant
		require.NoError(t, app.prepare())
		assert.Same(t, before, app.Assistant)
	})
}

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "snake-case", string(normalizeFlagName(nil, "snake_case")))
	assert.Equal(t, "session", string(normalizeFlagName(nil, "session")))
}
