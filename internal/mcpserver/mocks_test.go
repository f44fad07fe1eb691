package mcpserver

import (
	"context"
	"time"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/netgate"
)

type mockAssistant struct {
	lastSession string
	lastQuery   string
}

func (m *mockAssistant) Respond(_ context.Context, sessionID, query string) domain.Response {
	m.lastSession = sessionID
	m.lastQuery = query
	return domain.Response{
		Text:       "answer: " + query,
		Confidence: 0.8,
		References: []string{"README.md"},
		Context:    map[string]string{"stage": "topic"},
	}
}

func (m *mockAssistant) Greet() string                { return "hi from mock" }
func (m *mockAssistant) Farewell(string) string       { return "bye" }
func (m *mockAssistant) Reset(string)                 {}
func (m *mockAssistant) History(string) []domain.Turn { return nil }

type mockNetwork struct {
	status netgate.Status
}

func (m *mockNetwork) Probe(context.Context) netgate.Status { return m.status }

func upStatus() netgate.Status {
	return netgate.Status{
		Address:   "api.example.com:443",
		Available: true,
		Latencies: []time.Duration{40 * time.Millisecond, 42 * time.Millisecond, 44 * time.Millisecond},
		Median:    42500 * time.Microsecond,
	}
}
