package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/faqbot/internal/matching"
	"github.com/alexanderramin/faqbot/internal/session"
)

var (
	helpPhrases = []string{
		"help", "how can you help", "what can you help with", "how can you help me",
		"what can you do", "what do you do", "what can you do for me",
		"how can ai help me", "what are your features",
	}
	empathyTriggers  = []string{"error", "problem", "issue"}
	learningTriggers = []string{"learn", "teach", "explain"}

	// Topics that never get the "more details" offer.
	undecoratedTopics = map[string]bool{"": true, TopicGeneralHelp: true, TopicGreeting: true}
)

// regardingMinWords is exclusive.
const regardingMinWords = 3

// Enhancer adds conversational framing to a selected response and records
// the turn in the conversation.
type Enhancer struct {
	rng Rand
	now func() time.Time
}

func NewEnhancer(rng Rand) *Enhancer {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Enhancer{rng: rng, now: time.Now}
}

// Enhance decorates text for query and records the decorated turn in conv.
// The caller must hold conv for the duration of the turn.
func (e *Enhancer) Enhance(conv *session.Conversation, text, query, topic string) string {
	out := e.decorate(text, matching.NewQuery(query), topic)
	conv.Record(query, out, topic, e.now())
	return out
}

func (e *Enhancer) decorate(text string, q matching.Query, topic string) string {
	if q.AnyTerm(helpPhrases...) {
		if strings.Contains(text, helpIntroLine) {
			return text
		}
		return helpIntroLine + "\n\n" + text
	}
	if greetings[q.Bare] {
		return text
	}

	var parts []string
	if q.AnyTerm(empathyTriggers...) {
		parts = append(parts, pick(e.rng, empathyLines))
	}
	if q.AnyTerm(learningTriggers...) {
		parts = append(parts, pick(e.rng, learningLines))
	}
	if q.WordCount() > regardingMinWords && topic != "" {
		parts = append(parts, fmt.Sprintf("Regarding %s:", topic))
	}
	parts = append(parts, text)
	if !undecoratedTopics[topic] {
		parts = append(parts, moreDetailsLine)
	}
	return strings.Join(parts, "\n")
}

// Farewell summarizes the session. It does not reset it.
func (e *Enhancer) Farewell(conv *session.Conversation) string {
	return fmt.Sprintf("We've had %d helpful interactions. I hope I've been able to assist you well!\n\n%s",
		conv.InteractionCount, pick(e.rng, farewellFollowUps))
}

// Greet returns one of the greeting variants.
func (e *Enhancer) Greet() string {
	return pick(e.rng, greetingVariants)
}
