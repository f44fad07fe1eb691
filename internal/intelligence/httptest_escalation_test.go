package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/llm"
	"github.com/alexanderramin/faqbot/internal/matching"
	"github.com/alexanderramin/faqbot/internal/testutil"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func ollamaTestConfig(endpoint string) llm.LLMConfig {
	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	cfg.RetryBackoffMs = 0
	return cfg
}

// TestEscalator_WithHTTPTestServer exercises the full HTTP path: httptest
// server, Ollama client, escalator prompt and JSON parsing.
func TestEscalator_WithHTTPTestServer(t *testing.T) {
	answerJSON, err := json.Marshal(map[string]any{
		"answer":     "Compare them by startup time and memory.",
		"confidence": 0.93,
		"follow_ups": []string{"Want a benchmark script?"},
	})
	require.NoError(t, err)

	var gotPrompt string
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt, _ = body["prompt"].(string)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": string(answerJSON),
		})
	})
	defer srv.Close()

	client := llm.NewOllamaClient(ollamaTestConfig(srv.URL), llm.NoopObserver{})
	esc := NewEscalator(client, nil)

	ans, err := esc.Answer(context.Background(), "compare asyncio and threads", nil)
	require.NoError(t, err)

	assert.Equal(t, "Compare them by startup time and memory.", ans.Text)
	assert.InDelta(t, 0.93, ans.Confidence, 0.001)
	assert.Equal(t, "test-model", ans.Model)
	assert.Contains(t, gotPrompt, "compare asyncio and threads")
}

// TestSelector_EscalationFallsThroughOnServerError verifies that a failing
// backend never surfaces to the user: the rule stages answer instead.
func TestSelector_EscalationFallsThroughOnServerError(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	})
	defer srv.Close()

	client := llm.NewOllamaClient(ollamaTestConfig(srv.URL), llm.NoopObserver{})
	sel := NewSelector(testutil.Knowledge(t),
		WithEscalator(NewEscalator(client, nil), &testutil.StaticGate{Up: true}, 0),
		WithRand(testutil.FixedRand(0)),
	)

	got := sel.Select(context.Background(), matching.NewQuery("write a greeting"), nil)

	assert.NotEqual(t, domain.StageEscalation, got.Stage)
	assert.NotEmpty(t, got.Response.Text)
}
