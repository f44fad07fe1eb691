package matching

import "github.com/alexanderramin/faqbot/internal/domain"

const (
	technicalKeywordWeight = 3.0
	technicalPhraseWeight  = 2.0
	technicalLaymanWeight  = 0.5
)

// TechnicalDetector picks the single best technical domain for a query.
// It is deliberately separate from DomainScorer: callers need one answer,
// not a ranking.
type TechnicalDetector struct {
	profiles []domain.TechnicalProfile
}

func NewTechnicalDetector(profiles []domain.TechnicalProfile) *TechnicalDetector {
	return &TechnicalDetector{profiles: append([]domain.TechnicalProfile(nil), profiles...)}
}

// Detect returns the arg-max domain, or domain.General when nothing scores.
// Ties go to the domain defined first.
func (d *TechnicalDetector) Detect(q Query) domain.Domain {
	best := domain.General
	bestScore := 0.0
	for _, p := range d.profiles {
		score := d.score(p, q)
		if score == 0 {
			continue
		}
		if score > bestScore || (score == bestScore && p.Domain.Index() < best.Index()) {
			best, bestScore = p.Domain, score
		}
	}
	return best
}

func (d *TechnicalDetector) score(p domain.TechnicalProfile, q Query) float64 {
	score := float64(q.CountTerms(p.Keywords)) * technicalKeywordWeight
	for _, ph := range p.Phrases {
		if q.HasPhrase(ph) {
			score += technicalPhraseWeight
		}
	}
	score += float64(q.CountTerms(p.LaymanTerms)) * technicalLaymanWeight
	return score
}
