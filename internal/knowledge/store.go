// Package knowledge is the read-only content store: knowledge items, domain
// scoring metadata, the topic answer table and canned domain responses.
// Everything is loaded once at startup and shared by all sessions.
package knowledge

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/matching"
)

// DomainResponse is the canned overview answer for a domain.
type DomainResponse struct {
	Text         string
	References   []string
	FollowUps    []string
	CodeExamples []string
}

type topicAnswer struct {
	pattern *regexp.Regexp
	text    string
}

type topicAnswers struct {
	references []string
	answers    []topicAnswer
}

// Store is safe for concurrent reads; nothing mutates it after Load.
type Store struct {
	items          map[domain.Domain][]domain.KnowledgeItem
	project        domain.KnowledgeItem
	infos          []domain.DomainInfo
	profiles       []domain.TechnicalProfile
	searchKeywords map[domain.Domain][]string
	weights        map[domain.Domain]map[string]float64
	responses      map[domain.Domain]DomainResponse
	topics         []matching.Topic
	answers        map[string]topicAnswers
}

func newStore() *Store {
	return &Store{
		items:          make(map[domain.Domain][]domain.KnowledgeItem),
		searchKeywords: make(map[domain.Domain][]string),
		weights:        make(map[domain.Domain]map[string]float64),
		responses:      make(map[domain.Domain]DomainResponse),
		answers:        make(map[string]topicAnswers),
	}
}

// Get returns the item with the given key, or whose topic equals key
// case-insensitively.
func (s *Store) Get(d domain.Domain, key string) (domain.KnowledgeItem, bool) {
	for _, item := range s.items[d] {
		if item.Key == key || strings.EqualFold(item.Topic, key) {
			return item, true
		}
	}
	return domain.KnowledgeItem{}, false
}

// ByDomain returns the items of one domain in load order.
func (s *Store) ByDomain(d domain.Domain) []domain.KnowledgeItem {
	return append([]domain.KnowledgeItem(nil), s.items[d]...)
}

// Items returns every item, grouped by domain definition order.
func (s *Store) Items() []domain.KnowledgeItem {
	var out []domain.KnowledgeItem
	for _, d := range domain.All() {
		out = append(out, s.items[d]...)
	}
	return out
}

// ProjectItem is the synthesized item describing the assistant itself.
func (s *Store) ProjectItem() domain.KnowledgeItem {
	return s.project
}

func (s *Store) DomainInfos() []domain.DomainInfo {
	return append([]domain.DomainInfo(nil), s.infos...)
}

func (s *Store) TechnicalProfiles() []domain.TechnicalProfile {
	return append([]domain.TechnicalProfile(nil), s.profiles...)
}

// Topics returns the topic table in match order.
func (s *Store) Topics() []matching.Topic {
	return append([]matching.Topic(nil), s.topics...)
}

// TopicAnswer returns the first answer of topic whose pattern matches q,
// with the topic's references.
func (s *Store) TopicAnswer(topic string, q matching.Query) (text string, refs []string, ok bool) {
	ta, found := s.answers[topic]
	if !found {
		return "", nil, false
	}
	for _, a := range ta.answers {
		if a.pattern.MatchString(q.Text) {
			return a.text, append([]string(nil), ta.references...), true
		}
	}
	return "", nil, false
}

// DomainResponse returns the canned overview for d, if it has one.
func (s *Store) DomainResponse(d domain.Domain) (DomainResponse, bool) {
	r, ok := s.responses[d]
	return r, ok
}
