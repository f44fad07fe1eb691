package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openaiClient implements LLMClient over the OpenAI chat completions API.
// Retries are owned by generateWithRetry, so the SDK's own retry loop is off.
type openaiClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for OpenAI or any compatible endpoint.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []openaiopt.RequestOption{
		openaiopt.WithAPIKey(cfg.APIKey),
		openaiopt.WithBaseURL(strings.TrimRight(cfg.ResolvedEndpoint(), "/") + "/"),
		openaiopt.WithMaxRetries(0),
	}
	return &openaiClient{
		cfg:      cfg,
		client:   openai.NewClient(opts...),
		observer: observer,
	}
}

func (c *openaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.taskParams(req)

	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(req.SystemPrompt),
				},
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(req.UserPrompt),
			},
		},
	})

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.cfg.Model),
		Messages: messages,
	}
	if maxTok > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxTok))
	}
	if temp > 0 {
		params.Temperature = openai.Float(temp)
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", "", fmt.Errorf("%w: no choices in completion", ErrInvalidOutput)
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openaiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.Models.List(ctx)
	return err == nil
}
