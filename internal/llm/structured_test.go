package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAnswer struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	FollowUps  []string `json:"follow_ups"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"answer":"Use pytest.","confidence":0.95}`
	result, err := ExtractJSON[testAnswer](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Use pytest.", result.Answer)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"answer\":\"yes\",\"confidence\":0.88,\"follow_ups\":[\"more?\"]}\n```"
	result, err := ExtractJSON[testAnswer](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "yes", result.Answer)
	assert.Equal(t, []string{"more?"}, result.FollowUps)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Sure! Here it is:\n{\"answer\":\"ok\",\"confidence\":0.72}\nHope that helps!"
	result, err := ExtractJSON[testAnswer](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Answer)
}

func TestExtractJSON_BracesInsideString(t *testing.T) {
	raw := `{"answer":"use {name} placeholders","confidence":0.9}`
	result, err := ExtractJSON[testAnswer](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "use {name} placeholders", result.Answer)
}

func TestExtractJSON_EscapedQuote(t *testing.T) {
	raw := `{"answer":"say \"hi\" {","confidence":0.9}`
	result, err := ExtractJSON[testAnswer](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `say "hi" {`, result.Answer)
}

func TestExtractJSON_BareDecimal(t *testing.T) {
	raw := `{"answer":"costs .5 dollars","confidence":.85}`
	result, err := ExtractJSON[testAnswer](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Equal(t, "costs .5 dollars", result.Answer, "strings are left alone")
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testAnswer]("I don't know what you mean.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.False(t, LooksLikeJSON("plain text"))
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testAnswer](`{"answer":"x", broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(a testAnswer) error {
		if a.Confidence < 0 || a.Confidence > 1 {
			return fmt.Errorf("confidence must be in [0,1], got %f", a.Confidence)
		}
		return nil
	}
	_, err := ExtractJSON(`{"answer":"x","confidence":1.5}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}
