package intelligence

import "github.com/alexanderramin/faqbot/internal/matching"

var (
	strongAIWords = []string{
		"generate", "create", "write", "analyze", "summarize", "compare",
		"improve", "suggest", "complex", "advanced", "ai", "intelligence",
	}
	strongAIPhrases = []string{"how would you"}

	complexPhrases = []string{
		"pros and cons", "step by step", "in depth", "in detail",
		"compare and contrast", "best way to", "trade-offs", "tradeoffs",
	}

	contextualWords   = []string{"why", "explain", "optimize", "elaborate", "difference", "better"}
	contextualPhrases = []string{"how come"}
)

// contextualMinWords is exclusive: a contextual word escalates only in
// queries longer than this.
const contextualMinWords = 3

func escalationRules(networkOK bool) []matching.Rule[bool] {
	return []matching.Rule[bool]{
		{
			Name: "strong-ai",
			When: matching.Either(matching.Terms(strongAIWords...), matching.Phrases(strongAIPhrases...)),
			Then: true,
		},
		{
			Name: "offline",
			When: func(matching.Query) bool { return !networkOK },
			Then: false,
		},
		{
			Name: "complex-phrase",
			When: matching.Phrases(complexPhrases...),
			Then: true,
		},
		{
			Name: "contextual",
			When: func(q matching.Query) bool {
				return q.WordCount() > contextualMinWords &&
					(q.AnyTerm(contextualWords...) || q.AnyPhrase(contextualPhrases...))
			},
			Then: true,
		},
	}
}

// ShouldEscalate decides whether q deserves an LLM attempt. Strong AI
// wording escalates even when the network is down, so the caller can
// answer with the offline notice instead of a canned guess.
func ShouldEscalate(q matching.Query, networkOK bool) bool {
	verdict, _, _ := matching.FirstMatch(escalationRules(networkOK), q)
	return verdict
}

// EscalationRule names the rule that decided, or "" when none did.
func EscalationRule(q matching.Query, networkOK bool) string {
	_, name, _ := matching.FirstMatch(escalationRules(networkOK), q)
	return name
}
