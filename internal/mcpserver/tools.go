package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// mcpSessionID is used when the caller does not pick a session.
const mcpSessionID = "mcp"

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query     string `json:"query" jsonschema:"the question to ask the assistant"`
	SessionID string `json:"session_id,omitempty" jsonschema:"conversation id; turns with the same id share context"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Text       string            `json:"text"`
	Confidence float64           `json:"confidence"`
	References []string          `json:"references"`
	FollowUps  []string          `json:"followup_questions,omitempty"`
	Context    map[string]string `json:"context,omitempty"`
	SessionID  string            `json:"session_id"`
}

// GreetInput is the (empty) input schema for the greet tool.
type GreetInput struct{}

// GreetOutput is the output schema for the greet tool.
type GreetOutput struct {
	Text string `json:"text"`
}

// NetworkInput is the (empty) input schema for the network_status tool.
type NetworkInput struct{}

// NetworkOutput is the output schema for the network_status tool.
type NetworkOutput struct {
	Address   string  `json:"address"`
	Available bool    `json:"available"`
	MedianMs  float64 `json:"median_ms"`
	Failures  int     `json:"failures"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask the ConfigMaster support assistant a question",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "greet",
		Description: "Get the assistant's greeting and a list of what it can help with",
	}, s.handleGreet)

	if s.network != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "network_status",
			Description: "Check whether the AI backend is reachable",
		}, s.handleNetwork)
	}
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, AskOutput{}, errors.New("query is required")
	}
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = mcpSessionID
	}

	resp := s.assistant.Respond(ctx, sessionID, input.Query)
	return nil, AskOutput{
		Text:       resp.Text,
		Confidence: resp.Confidence,
		References: resp.References,
		FollowUps:  resp.FollowUps,
		Context:    resp.Context,
		SessionID:  sessionID,
	}, nil
}

func (s *Server) handleGreet(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GreetInput,
) (*mcp.CallToolResult, GreetOutput, error) {
	return nil, GreetOutput{Text: s.assistant.Greet()}, nil
}

func (s *Server) handleNetwork(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ NetworkInput,
) (*mcp.CallToolResult, NetworkOutput, error) {
	st := s.network.Probe(ctx)
	return nil, NetworkOutput{
		Address:   st.Address,
		Available: st.Available,
		MedianMs:  float64(st.Median.Microseconds()) / 1000,
		Failures:  st.Failures,
	}, nil
}
