package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/knowledge"
	"github.com/alexanderramin/faqbot/internal/matching"
	"github.com/alexanderramin/faqbot/internal/netgate"
)

// DefaultEscalationThreshold is the confidence an LLM answer must exceed
// to be used.
const DefaultEscalationThreshold = 0.8

// searchScoreFloor is the minimum top search score worth templating.
const searchScoreFloor = 5.0

// Topic labels for responses that do not come from the knowledge base.
const (
	TopicGreeting        = "greeting"
	TopicGeneralHelp     = "general_help"
	TopicTroubleshooting = "troubleshooting"
)

var (
	identityPatterns = compileAll(
		`who\s+are\s+you`,
		`what\s+are\s+you`,
		`\byour\s+name\b`,
		`who\s+(made|built|created)\s+you`,
		`are\s+you\s+an?\s+(bot|robot|human|ai)\b`,
		`introduce\s+yourself`,
	)

	errorIndicators = []string{
		"error", "exception", "traceback", "failed", "failing",
		"crash", "bug", "broken", "not working",
	}

	greetings = map[string]bool{
		"hi": true, "hello": true, "hey": true, "greetings": true, "hi there": true,
	}

	capabilityPhrases = []string{
		"what can you do", "how can you help", "what can you help with",
		"what do you do", "what are your features", "your capabilities",
		"what are you capable of", "help me",
	}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Selection is the selector's verdict for one query.
type Selection struct {
	Response domain.Response
	Stage    domain.Stage
	Topic    string
}

type stageFunc func(ctx context.Context, q matching.Query, history []domain.Turn) (Selection, bool)

// Selector runs the ordered response stages. The first stage that produces
// a response wins. A Selector holds no per-query state and is safe for
// concurrent use.
type Selector struct {
	store     *knowledge.Store
	topics    *matching.TopicMatcher
	scorer    *matching.DomainScorer
	detector  *matching.TechnicalDetector
	escalator Escalator
	gate      netgate.Checker
	threshold float64
	rng       Rand
	log       zerolog.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithEscalator enables the LLM stage. A nil gate treats the network as
// always available.
func WithEscalator(e Escalator, gate netgate.Checker, threshold float64) SelectorOption {
	return func(s *Selector) {
		s.escalator = e
		s.gate = gate
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// WithRand injects the source used to pick fallback texts.
func WithRand(r Rand) SelectorOption {
	return func(s *Selector) { s.rng = r }
}

func WithLogger(log zerolog.Logger) SelectorOption {
	return func(s *Selector) { s.log = log }
}

// NewSelector builds a Selector over store.
func NewSelector(store *knowledge.Store, opts ...SelectorOption) *Selector {
	s := &Selector{
		store:     store,
		topics:    matching.NewTopicMatcher(store.Topics()),
		scorer:    matching.NewDomainScorer(store.DomainInfos()),
		detector:  matching.NewTechnicalDetector(store.TechnicalProfiles()),
		threshold: DefaultEscalationThreshold,
		rng:       NewRand(0),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) stages() []stageFunc {
	return []stageFunc{
		s.escalate,
		s.identity,
		s.combined,
		s.troubleshoot,
		s.greeting,
		s.domainSpecific,
		s.capabilities,
		s.knowledgeSearch,
	}
}

// Select produces a response for q. It always returns something: the last
// stage falls back to a rephrase prompt.
func (s *Selector) Select(ctx context.Context, q matching.Query, history []domain.Turn) Selection {
	for _, stage := range s.stages() {
		if sel, ok := stage(ctx, q, history); ok {
			return sel.withContext()
		}
	}
	return s.fallback().withContext()
}

func (sel Selection) withContext() Selection {
	if sel.Response.Context == nil {
		sel.Response.Context = make(map[string]string)
	}
	sel.Response.Context["stage"] = string(sel.Stage)
	if sel.Topic != "" {
		sel.Response.Context["topic"] = sel.Topic
	}
	// Canned slices are shared; callers get their own copies.
	sel.Response.References = append([]string{}, sel.Response.References...)
	sel.Response.FollowUps = slices.Clone(sel.Response.FollowUps)
	sel.Response.CodeExamples = slices.Clone(sel.Response.CodeExamples)
	return sel
}

func (s *Selector) escalate(ctx context.Context, q matching.Query, history []domain.Turn) (Selection, bool) {
	if s.escalator == nil || q.Empty() {
		return Selection{}, false
	}
	// A down network can only turn a yes into a no, so skip the probe
	// when even an open network would not escalate.
	if !ShouldEscalate(q, true) {
		return Selection{}, false
	}

	networkOK := s.gate == nil || s.gate.Available(ctx)
	if !networkOK {
		if !ShouldEscalate(q, false) {
			return Selection{}, false
		}
		s.log.Info().Str("rule", EscalationRule(q, false)).Msg("escalation wanted but network unavailable")
		return Selection{
			Stage:    domain.StageOffline,
			Response: domain.Response{Text: offlineText, Confidence: 0.5},
		}, true
	}

	ans, err := s.escalator.Answer(ctx, q.Raw, history)
	if err != nil {
		s.log.Warn().Err(err).Str("rule", EscalationRule(q, true)).Msg("escalation failed, using rules")
		return Selection{}, false
	}
	if ans.Confidence <= s.threshold {
		s.log.Debug().Float64("confidence", ans.Confidence).Msg("escalation answer below threshold")
		return Selection{}, false
	}

	resp := domain.Response{
		Text:       ans.Text,
		Confidence: ans.Confidence,
		FollowUps:  ans.FollowUps,
	}
	if ans.Model != "" {
		resp.Context = map[string]string{"model": ans.Model}
	}
	return Selection{Stage: domain.StageEscalation, Response: resp}, true
}

func (s *Selector) identity(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	for _, re := range identityPatterns {
		if re.MatchString(q.Text) {
			return Selection{
				Stage:    domain.StageIdentity,
				Response: domain.Response{Text: identityText, Confidence: 0.95},
			}, true
		}
	}
	return Selection{}, false
}

func (s *Selector) combined(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	detected := s.scorer.Detected(q)
	if !detected[domain.DomainMCP] || !detected[domain.DomainPython] {
		return Selection{}, false
	}

	var parts []knowledge.DomainResponse
	var names []string
	for _, ds := range s.scorer.Score(q) {
		if ds.Domain != domain.DomainMCP && ds.Domain != domain.DomainPython {
			continue
		}
		dr, ok := s.store.DomainResponse(ds.Domain)
		if !ok {
			return Selection{}, false
		}
		parts = append(parts, dr)
		names = append(names, string(ds.Domain))
	}
	if len(parts) != 2 {
		return Selection{}, false
	}

	text := fmt.Sprintf("Let me explain how these aspects work together:\n\n%s\n\nThis integrates with:\n\n%s\n\n"+
		"Would you like to explore any specific aspect in more detail?",
		stripIntro(parts[0].Text), stripIntro(parts[1].Text))

	resp := domain.Response{Text: text, Confidence: 0.9}
	for _, p := range parts {
		resp.References = appendUnique(resp.References, p.References...)
		resp.FollowUps = appendUnique(resp.FollowUps, p.FollowUps...)
		resp.CodeExamples = append(resp.CodeExamples, p.CodeExamples...)
	}
	return Selection{Stage: domain.StageCombined, Topic: strings.Join(names, "+"), Response: resp}, true
}

// stripIntro drops the first paragraph of a canned domain response.
func stripIntro(text string) string {
	parts := strings.SplitN(text, "\n\n", 2)
	if len(parts) < 2 {
		return text
	}
	return parts[1]
}

func (s *Selector) troubleshoot(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	if !q.AnyPhrase(errorIndicators...) {
		return Selection{}, false
	}
	for _, fam := range errorFamilies {
		if q.AnyPhrase(fam.indicators...) {
			return Selection{
				Stage: domain.StageError,
				Topic: TopicTroubleshooting,
				Response: domain.Response{
					Text:         formatTroubleshooting(fam, q),
					Confidence:   0.85,
					FollowUps:    errorFollowUps,
					CodeExamples: []string{fam.example},
					Context:      map[string]string{"error_family": string(fam.family)},
				},
			}, true
		}
	}
	return Selection{
		Stage: domain.StageError,
		Topic: TopicTroubleshooting,
		Response: domain.Response{
			Text:       genericErrorText,
			Confidence: 0.6,
			FollowUps:  genericErrorFollowUps,
		},
	}, true
}

func formatTroubleshooting(fam errorFamily, q matching.Query) string {
	var b strings.Builder
	b.WriteString("🔍 Issue Analysis:\n")
	b.WriteString(fam.diagnosis)
	b.WriteString("\n\n❗ Problem:\n")
	b.WriteString(strings.TrimSpace(q.Raw))
	b.WriteString("\n\n✅ Solution:\n")
	b.WriteString(fam.solution)
	b.WriteString("\n\nExample:\n```\n")
	b.WriteString(fam.example)
	b.WriteString("\n```\n\n🛡️ Prevention Tips:\n")
	for _, tip := range fam.prevention {
		b.WriteString("• ")
		b.WriteString(tip)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Selector) greeting(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	if !greetings[q.Bare] {
		return Selection{}, false
	}
	return Selection{
		Stage:    domain.StageGreeting,
		Topic:    TopicGreeting,
		Response: domain.Response{Text: GreetingText, Confidence: 1.0, FollowUps: greetingFollowUps},
	}, true
}

func (s *Selector) domainSpecific(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	for _, topic := range s.topics.Match(q) {
		if text, refs, ok := s.store.TopicAnswer(topic, q); ok {
			return Selection{
				Stage:    domain.StageTopic,
				Topic:    topic,
				Response: domain.Response{Text: text, Confidence: 0.8, References: refs},
			}, true
		}
	}

	d := s.detector.Detect(q)
	if d == domain.General {
		return Selection{}, false
	}

	if dr, ok := s.store.DomainResponse(d); ok {
		return Selection{
			Stage: domain.StageDomain,
			Topic: string(d),
			Response: domain.Response{
				Text:         dr.Text,
				Confidence:   0.85,
				References:   dr.References,
				FollowUps:    dr.FollowUps,
				CodeExamples: dr.CodeExamples,
			},
		}, true
	}

	item, ok := s.bestInDomain(q, d)
	if !ok {
		return Selection{}, false
	}
	rt := ClassifyResponseType(q, item)
	return Selection{
		Stage: domain.StageDomain,
		Topic: item.Topic,
		Response: domain.Response{
			Text:       FillTemplate(rt, item, q),
			Confidence: 0.8,
			References: item.RelatedTopics,
			Context:    map[string]string{"response_type": string(rt), "domain": string(d)},
		},
	}, true
}

func (s *Selector) bestInDomain(q matching.Query, d domain.Domain) (domain.KnowledgeItem, bool) {
	for _, hit := range s.store.SearchScored(q) {
		if !hit.Synthesized && hit.Item.Domain == d {
			return hit.Item, true
		}
	}
	items := s.store.ByDomain(d)
	if len(items) == 0 {
		return domain.KnowledgeItem{}, false
	}
	return items[0], true
}

func (s *Selector) capabilities(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	if q.Bare != "help" && !q.AnyPhrase(capabilityPhrases...) {
		return Selection{}, false
	}
	return Selection{
		Stage:    domain.StageCapability,
		Topic:    TopicGeneralHelp,
		Response: domain.Response{Text: capabilitiesText, Confidence: 0.95, FollowUps: capabilityFollowUps},
	}, true
}

func (s *Selector) knowledgeSearch(_ context.Context, q matching.Query, _ []domain.Turn) (Selection, bool) {
	hits := s.store.SearchScored(q)
	if len(hits) == 0 {
		return Selection{}, false
	}

	top := hits[0]
	var confidence float64
	switch {
	case top.Synthesized:
		confidence = 0.85
	case top.Score >= searchScoreFloor:
		confidence = 0.4 + min(top.Score, 45)/100
	default:
		return Selection{}, false
	}

	var refs []string
	for _, hit := range hits {
		refs = appendUnique(refs, hit.Item.RelatedTopics...)
	}
	rt := ClassifyResponseType(q, top.Item)
	return Selection{
		Stage: domain.StageKnowledge,
		Topic: top.Item.Topic,
		Response: domain.Response{
			Text:       FillTemplate(rt, top.Item, q),
			Confidence: confidence,
			References: refs,
			Context:    map[string]string{"response_type": string(rt), "domain": string(top.Item.Domain)},
		},
	}, true
}

func (s *Selector) fallback() Selection {
	return Selection{
		Stage:    domain.StageFallback,
		Response: domain.Response{Text: pick(s.rng, fallbackTexts), Confidence: 0.2},
	}
}

func appendUnique(dst []string, vals ...string) []string {
	for _, v := range vals {
		if v == "" || slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}

