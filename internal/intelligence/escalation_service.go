package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/llm"
)

// plainTextConfidence is assigned to answers the model returned as prose
// instead of the requested JSON object.
const plainTextConfidence = 0.9

// EscalationAnswer is an LLM-produced reply.
type EscalationAnswer struct {
	Text       string
	Confidence float64
	FollowUps  []string
	Model      string
}

// Escalator answers questions the rule tables hand off.
type Escalator interface {
	Answer(ctx context.Context, question string, history []domain.Turn) (*EscalationAnswer, error)
}

type llmEscalator struct {
	client       llm.LLMClient
	systemPrompt string
}

// NewEscalator creates an Escalator backed by an LLM client. The domain
// descriptions are embedded in the system prompt.
func NewEscalator(client llm.LLMClient, infos []domain.DomainInfo) Escalator {
	return &llmEscalator{
		client:       client,
		systemPrompt: buildEscalationSystemPrompt(infos),
	}
}

// escalationLLMResponse is the JSON structure expected from the LLM.
type escalationLLMResponse struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	FollowUps  []string `json:"follow_ups"`
}

func (e *llmEscalator) Answer(ctx context.Context, question string, history []domain.Turn) (*EscalationAnswer, error) {
	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAnswer,
		SystemPrompt: e.systemPrompt,
		UserPrompt:   buildEscalationUserPrompt(history, question),
	})
	if err != nil {
		return nil, fmt.Errorf("llm answer generation failed: %w", err)
	}

	if !llm.LooksLikeJSON(resp.Text) {
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: empty answer", llm.ErrInvalidOutput)
		}
		return &EscalationAnswer{Text: text, Confidence: plainTextConfidence, Model: resp.Model}, nil
	}

	parsed, err := llm.ExtractJSON[escalationLLMResponse](resp.Text, validateEscalationResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract answer: %w", err)
	}
	return &EscalationAnswer{
		Text:       strings.TrimSpace(parsed.Answer),
		Confidence: parsed.Confidence,
		FollowUps:  parsed.FollowUps,
		Model:      resp.Model,
	}, nil
}

func validateEscalationResponse(resp escalationLLMResponse) error {
	if strings.TrimSpace(resp.Answer) == "" {
		return fmt.Errorf("answer field is required")
	}
	if resp.Confidence < 0 || resp.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %f", resp.Confidence)
	}
	return nil
}
