package domain

// KnowledgeItem is the atomic unit of canned content. Items are loaded once
// at startup and never mutated.
type KnowledgeItem struct {
	Domain        Domain
	Key           string
	Topic         string
	Description   string
	Examples      []string
	RelatedTopics []string
	CommonIssues  []string
	Solutions     []string
}

// DomainInfo is scoring metadata for the ranked domain scorer.
type DomainInfo struct {
	Domain       Domain
	Keywords     []string
	ContextWords []string
	Priority     int
	Description  string
}

// TechnicalProfile drives single-best technical domain detection.
type TechnicalProfile struct {
	Domain      Domain
	Keywords    []string
	Phrases     []string
	LaymanTerms []string
}
