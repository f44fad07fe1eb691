package knowledge

import (
	"sort"
	"strings"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/matching"
)

// Search weights. The ranking tests pin relative order on fixed queries,
// so these stay exactly as they are.
const (
	queryInTopic       = 10.0
	queryInDescription = 8.0
	wordInTopic        = 5.0
	originalWordBonus  = 3.0
	actionInDesc       = 3.0
	originalInDesc     = 2.0
	otherInDesc        = 1.0
	wordInExample      = 1.0
	wordInRelated      = 2.0
	pairInTopic        = 5.0
	pairInDescription  = 4.0
	domainMultiplier   = 2.0
)

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "with": true, "by": true, "do": true,
	"does": true, "how": true, "what": true, "where": true, "when": true,
	"why": true, "which": true, "i": true, "is": true, "are": true, "me": true,
	"my": true, "you": true, "your": true, "can": true, "about": true,
	"please": true, "it": true, "this": true, "and": true, "or": true,
}

// actionVariations groups action words that should match one another.
var actionVariations = []struct {
	action     string
	variations []string
}{
	{"create", []string{"create", "make", "setup", "set up", "build", "start", "new"}},
	{"use", []string{"use", "work with", "utilize", "run"}},
	{"install", []string{"install", "download", "get"}},
}

var projectTerms = []string{
	"project", "chatbot", "assistant", "feature", "features", "dinesh",
	"capabilities", "this project", "bot", "functionality", "system",
}

// Scored is one search hit.
type Scored struct {
	Item        domain.KnowledgeItem
	Score       float64
	Relevance   float64
	Synthesized bool
}

// Search returns matching items ordered by relevance.
func (s *Store) Search(q matching.Query) []domain.KnowledgeItem {
	scored := s.SearchScored(q)
	out := make([]domain.KnowledgeItem, len(scored))
	for i, sc := range scored {
		out[i] = sc.Item
	}
	return out
}

// SearchScored is Search with scores attached. A project-identity term
// short-circuits scoring and yields the single synthesized project item.
func (s *Store) SearchScored(q matching.Query) []Scored {
	if q.Empty() {
		return nil
	}
	if q.AnyTerm(projectTerms...) {
		return []Scored{{Item: s.project, Synthesized: true}}
	}

	original := make(map[string]bool)
	var words []string
	for _, w := range q.Words {
		if stopWords[w] || original[w] {
			continue
		}
		original[w] = true
		words = append(words, w)
	}
	words = expandActions(words)
	pairs := wordPairs(q.Words)

	multiplier := make(map[domain.Domain]float64)
	var out []Scored
	for _, item := range s.Items() {
		d := item.Domain
		m, ok := multiplier[d]
		if !ok {
			m = 1.0
			if q.AnyTerm(s.searchKeywords[d]...) {
				m = domainMultiplier
			}
			multiplier[d] = m
		}
		score := scoreItem(item, q.Bare, words, original, pairs, m)
		if score <= 0 {
			continue
		}
		out = append(out, Scored{Item: item, Score: score, Relevance: s.domainRelevance(q, d)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Relevance > out[j].Relevance
	})
	return out
}

func scoreItem(item domain.KnowledgeItem, full string, words []string, original map[string]bool, pairs []string, m float64) float64 {
	topic := strings.ToLower(item.Topic)
	desc := strings.ToLower(item.Description)
	score := 0.0

	if full != "" && strings.Contains(topic, full) {
		score += queryInTopic * m
	}
	if full != "" && strings.Contains(desc, full) {
		score += queryInDescription * m
	}

	for _, w := range words {
		if strings.Contains(topic, w) {
			score += wordInTopic
			if original[w] {
				score += originalWordBonus
			}
		}
		if strings.Contains(desc, w) {
			switch {
			case isAction(w):
				score += actionInDesc
			case original[w]:
				score += originalInDesc
			default:
				score += otherInDesc
			}
		}
		if anyContains(item.Examples, w) {
			score += wordInExample
		}
		if anyContains(item.RelatedTopics, w) {
			score += wordInRelated
		}
	}

	for _, p := range pairs {
		if strings.Contains(topic, p) {
			score += pairInTopic
		}
		if strings.Contains(desc, p) {
			score += pairInDescription
		}
	}
	return score
}

// domainRelevance is the tie-break: keyword weights of d summed over the
// distinct query words, divided by their count.
func (s *Store) domainRelevance(q matching.Query, d domain.Domain) float64 {
	weights := s.weights[d]
	seen := make(map[string]bool)
	total := 0.0
	for _, w := range q.Words {
		if seen[w] {
			continue
		}
		seen[w] = true
		total += weights[w]
	}
	if len(seen) == 0 {
		return 0
	}
	return total / float64(len(seen))
}

func expandActions(words []string) []string {
	out := append([]string(nil), words...)
	have := make(map[string]bool, len(words))
	for _, w := range words {
		have[w] = true
	}
	add := func(w string) {
		if !have[w] {
			have[w] = true
			out = append(out, w)
		}
	}
	for _, w := range words {
		for _, av := range actionVariations {
			if !contains(av.variations, w) {
				continue
			}
			add(av.action)
			for _, v := range av.variations {
				add(v)
			}
		}
	}
	return out
}

func isAction(w string) bool {
	for _, av := range actionVariations {
		if av.action == w {
			return true
		}
	}
	return false
}

func wordPairs(words []string) []string {
	if len(words) < 2 {
		return nil
	}
	pairs := make([]string, 0, len(words)-1)
	for i := 0; i+1 < len(words); i++ {
		pairs = append(pairs, words[i]+" "+words[i+1])
	}
	return pairs
}

func anyContains(list []string, w string) bool {
	for _, v := range list {
		if strings.Contains(strings.ToLower(v), w) {
			return true
		}
	}
	return false
}

func contains(list []string, w string) bool {
	for _, v := range list {
		if v == w {
			return true
		}
	}
	return false
}
