package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/faqbot/internal/domain"
)

const escalationSystemPromptTemplate = `You are Dinesh Assistant, the support assistant for the ConfigMaster project.

Your responses should:
1. Be focused and relevant to the specific query
2. Avoid repeating information across different topics
3. Maintain context awareness using the previous conversation
4. Provide clear, structured answers
5. Use an appropriate level of technical detail

When a question spans several topics (for example MCP and Python), separate them clearly and explain how they relate.

## Knowledge domains
%DOMAINS%

You must output ONLY a JSON object with these exact fields:
{
  "answer": "The answer text, markdown allowed",
  "confidence": 0.0-1.0,
  "follow_ups": ["A follow-up question the user might ask next"]
}

Set confidence below 0.5 when the question is outside the domains above.
Output ONLY the JSON object, no markdown fences, no text before or after.`

// previousTurns is how much history the LLM sees.
const previousTurns = 3

func formatDomains(infos []domain.DomainInfo) string {
	var b strings.Builder
	for _, info := range infos {
		if info.Description == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", info.Domain, info.Description)
	}
	return b.String()
}

func buildEscalationSystemPrompt(infos []domain.DomainInfo) string {
	return strings.Replace(escalationSystemPromptTemplate, "%DOMAINS%", formatDomains(infos), 1)
}

func buildEscalationUserPrompt(history []domain.Turn, question string) string {
	var b strings.Builder

	if n := len(history); n > 0 {
		if n > previousTurns {
			history = history[n-previousTurns:]
		}
		b.WriteString("Previous conversation:\n")
		for _, turn := range history {
			b.WriteString("User: ")
			b.WriteString(turn.Query)
			b.WriteString("\nAssistant: ")
			b.WriteString(turn.Response)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("## User Question\n")
	b.WriteString(question)
	return b.String()
}
