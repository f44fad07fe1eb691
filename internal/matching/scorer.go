package matching

import (
	"sort"

	"github.com/alexanderramin/faqbot/internal/domain"
)

const (
	keywordWeight  = 2.0
	contextWeight  = 0.5
	priorityWeight = 0.25
)

// DomainScore is one row of a ranked domain result.
type DomainScore struct {
	Domain      domain.Domain
	Score       float64
	KeywordHits int
	ContextHits int
}

// DomainScorer ranks domains by a bag-of-words score. Scores are not
// normalized by query length.
type DomainScorer struct {
	infos []domain.DomainInfo
}

func NewDomainScorer(infos []domain.DomainInfo) *DomainScorer {
	sorted := append([]domain.DomainInfo(nil), infos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Domain.Index() < sorted[j].Domain.Index()
	})
	return &DomainScorer{infos: sorted}
}

// Score returns every domain with a positive score, sorted descending.
// The priority bonus is flat, so a domain with priority > 0 is listed even
// without hits. Ties keep domain definition order.
func (s *DomainScorer) Score(q Query) []DomainScore {
	var out []DomainScore
	for _, info := range s.infos {
		kw := q.CountTerms(info.Keywords)
		cw := q.CountTerms(info.ContextWords)
		score := float64(kw)*keywordWeight + float64(cw)*contextWeight + float64(info.Priority)*priorityWeight
		if score <= 0 {
			continue
		}
		out = append(out, DomainScore{
			Domain:      info.Domain,
			Score:       score,
			KeywordHits: kw,
			ContextHits: cw,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Detected returns the domains with at least one keyword hit.
func (s *DomainScorer) Detected(q Query) map[domain.Domain]bool {
	set := make(map[domain.Domain]bool)
	for _, ds := range s.Score(q) {
		if ds.KeywordHits > 0 {
			set[ds.Domain] = true
		}
	}
	return set
}
