package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/llm"
	"github.com/alexanderramin/faqbot/internal/matching"
	"github.com/alexanderramin/faqbot/internal/testutil"
)

type mockLLMClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func TestShouldEscalate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		networkOK bool
		want      bool
	}{
		{"strong AI word online", "write a short poem", true, true},
		{"strong AI word offline", "write a short poem", false, true},
		{"strong AI phrase", "how would you structure this", false, true},
		{"ai as whole word only", "i said hello there", true, false},
		{"complex phrase online", "pros and cons of pytest", true, true},
		{"complex phrase offline", "pros and cons of pytest", false, false},
		{"contextual word long query", "why is this so slow", true, true},
		{"contextual word offline", "why is this so slow", false, false},
		{"contextual word short query", "explain decorators", true, false},
		{"how come phrase", "how come the tests fail", true, true},
		{"plain question", "tell me about pytest", true, false},
		{"empty query", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldEscalate(matching.NewQuery(tt.query), tt.networkOK))
		})
	}
}

func TestEscalationRule_NamesDecidingRule(t *testing.T) {
	assert.Equal(t, "strong-ai", EscalationRule(matching.NewQuery("generate a config"), false))
	assert.Equal(t, "offline", EscalationRule(matching.NewQuery("pros and cons"), false))
	assert.Equal(t, "complex-phrase", EscalationRule(matching.NewQuery("pros and cons"), true))
	assert.Equal(t, "", EscalationRule(matching.NewQuery("hello"), true))
}

func TestEscalator_ParsesJSONAnswer(t *testing.T) {
	client := &mockLLMClient{response: `{
      "answer": "Use a dataclass for the settings object.",
      "confidence": 0.92,
      "follow_ups": ["How do I validate settings?"]
    }`}
	esc := NewEscalator(client, nil)

	ans, err := esc.Answer(context.Background(), "how would you model settings?", nil)

	require.NoError(t, err)
	assert.Equal(t, "Use a dataclass for the settings object.", ans.Text)
	assert.InDelta(t, 0.92, ans.Confidence, 0.001)
	assert.Equal(t, []string{"How do I validate settings?"}, ans.FollowUps)
	assert.Equal(t, "llama3.2", ans.Model)
	assert.Equal(t, llm.TaskAnswer, client.lastReq.Task)
}

func TestEscalator_PlainTextAnswer(t *testing.T) {
	esc := NewEscalator(&mockLLMClient{response: "  Just run pytest -v.  "}, nil)

	ans, err := esc.Answer(context.Background(), "how do I run tests", nil)

	require.NoError(t, err)
	assert.Equal(t, "Just run pytest -v.", ans.Text)
	assert.InDelta(t, plainTextConfidence, ans.Confidence, 0.001)
}

func TestEscalator_RejectsBadOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"empty", "   "},
		{"missing answer", `{"confidence": 0.9}`},
		{"confidence out of range", `{"answer": "yes", "confidence": 1.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esc := NewEscalator(&mockLLMClient{response: tt.response}, nil)

			_, err := esc.Answer(context.Background(), "q", nil)

			require.Error(t, err)
			assert.True(t, errors.Is(err, llm.ErrInvalidOutput), "got %v", err)
		})
	}
}

func TestEscalator_PropagatesClientError(t *testing.T) {
	esc := NewEscalator(&mockLLMClient{err: llm.ErrTimeout}, nil)

	_, err := esc.Answer(context.Background(), "q", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrTimeout))
}

func TestEscalator_PromptCarriesDomainsAndRecentHistory(t *testing.T) {
	client := &mockLLMClient{response: `{"answer":"ok","confidence":0.9}`}
	infos := []domain.DomainInfo{
		{Domain: domain.DomainPython, Description: "Python language and tooling"},
		{Domain: domain.DomainMCP, Description: "Model Context Protocol server"},
		{Domain: domain.DomainWeb},
	}
	history := []domain.Turn{
		testutil.NewTurn("first question", testutil.WithResponse("first answer")),
		testutil.NewTurn("second question", testutil.WithResponse("second answer")),
		testutil.NewTurn("third question", testutil.WithResponse("third answer"), testutil.WithTopic("python")),
		testutil.NewTurn("fourth question"),
	}
	esc := NewEscalator(client, infos)

	_, err := esc.Answer(context.Background(), "what next?", history)
	require.NoError(t, err)

	sys := client.lastReq.SystemPrompt
	assert.Contains(t, sys, "Dinesh Assistant")
	assert.Contains(t, sys, "- python: Python language and tooling")
	assert.Contains(t, sys, "- mcp: Model Context Protocol server")
	assert.NotContains(t, sys, "- web:")
	assert.NotContains(t, sys, "%DOMAINS%")

	user := client.lastReq.UserPrompt
	assert.True(t, strings.HasPrefix(user, "Previous conversation:\n"))
	assert.NotContains(t, user, "first question")
	assert.Contains(t, user, "User: second question\nAssistant: second answer")
	assert.Contains(t, user, "User: fourth question\nAssistant: answer to fourth question")
	assert.True(t, strings.HasSuffix(user, "## User Question\nwhat next?"))
}

func TestEscalator_NoHistoryOmitsPreamble(t *testing.T) {
	client := &mockLLMClient{response: `{"answer":"ok","confidence":0.9}`}
	esc := NewEscalator(client, nil)

	_, err := esc.Answer(context.Background(), "hello?", nil)
	require.NoError(t, err)

	assert.Equal(t, "## User Question\nhello?", client.lastReq.UserPrompt)
}
