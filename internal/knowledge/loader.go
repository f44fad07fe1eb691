package knowledge

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/matching"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	domainsFile = "domains.yaml"
	itemsFile   = "items.yaml"
	topicsFile  = "topics.yaml"
)

type domainsDoc struct {
	Domains []struct {
		Domain         string             `yaml:"domain"`
		Description    string             `yaml:"description"`
		Priority       int                `yaml:"priority"`
		Keywords       []string           `yaml:"keywords"`
		ContextWords   []string           `yaml:"context_words"`
		SearchKeywords []string           `yaml:"search_keywords"`
		Relevance      map[string]float64 `yaml:"relevance"`
		Technical      struct {
			Keywords []string `yaml:"keywords"`
			Phrases  []string `yaml:"phrases"`
			Layman   []string `yaml:"layman"`
		} `yaml:"technical"`
		Response *struct {
			Text         string   `yaml:"text"`
			References   []string `yaml:"references"`
			FollowUps    []string `yaml:"follow_ups"`
			CodeExamples []string `yaml:"code_examples"`
		} `yaml:"response"`
	} `yaml:"domains"`
}

type itemDoc struct {
	Domain        string   `yaml:"domain"`
	Key           string   `yaml:"key"`
	Topic         string   `yaml:"topic"`
	Description   string   `yaml:"description"`
	Examples      []string `yaml:"examples"`
	RelatedTopics []string `yaml:"related_topics"`
	CommonIssues  []string `yaml:"common_issues"`
	Solutions     []string `yaml:"solutions"`
}

type itemsDoc struct {
	ProjectItem itemDoc   `yaml:"project_item"`
	Items       []itemDoc `yaml:"items"`
}

type topicsDoc struct {
	Topics []struct {
		Name       string   `yaml:"name"`
		Pattern    string   `yaml:"pattern"`
		References []string `yaml:"references"`
		Answers    []struct {
			Pattern string `yaml:"pattern"`
			Text    string `yaml:"text"`
		} `yaml:"answers"`
	} `yaml:"topics"`
}

// LoadDefault loads the knowledge tables compiled into the binary.
func LoadDefault() (*Store, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded knowledge: %w", err)
	}
	return Load(sub)
}

// LoadDir loads knowledge tables from a directory holding domains.yaml,
// items.yaml and topics.yaml. An empty dir means the embedded tables.
func LoadDir(dir string) (*Store, error) {
	if dir == "" {
		return LoadDefault()
	}
	return Load(os.DirFS(dir))
}

// Load parses and validates the three knowledge files from fsys.
func Load(fsys fs.FS) (*Store, error) {
	var ddoc domainsDoc
	if err := decodeFile(fsys, domainsFile, &ddoc); err != nil {
		return nil, err
	}
	var idoc itemsDoc
	if err := decodeFile(fsys, itemsFile, &idoc); err != nil {
		return nil, err
	}
	var tdoc topicsDoc
	if err := decodeFile(fsys, topicsFile, &tdoc); err != nil {
		return nil, err
	}

	s := newStore()

	for _, d := range ddoc.Domains {
		dom, ok := domain.ParseDomain(d.Domain)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", domainsFile, ErrUnknownDomain, d.Domain)
		}
		s.infos = append(s.infos, domain.DomainInfo{
			Domain:       dom,
			Keywords:     d.Keywords,
			ContextWords: d.ContextWords,
			Priority:     d.Priority,
			Description:  d.Description,
		})
		s.profiles = append(s.profiles, domain.TechnicalProfile{
			Domain:      dom,
			Keywords:    d.Technical.Keywords,
			Phrases:     d.Technical.Phrases,
			LaymanTerms: d.Technical.Layman,
		})
		s.searchKeywords[dom] = d.SearchKeywords
		s.weights[dom] = d.Relevance
		if d.Response != nil {
			s.responses[dom] = DomainResponse{
				Text:         d.Response.Text,
				References:   d.Response.References,
				FollowUps:    d.Response.FollowUps,
				CodeExamples: d.Response.CodeExamples,
			}
		}
	}

	project, err := toItem(idoc.ProjectItem)
	if err != nil {
		return nil, fmt.Errorf("%s: project item: %w", itemsFile, err)
	}
	s.project = project

	for _, raw := range idoc.Items {
		item, err := toItem(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", itemsFile, err)
		}
		if _, dup := s.Get(item.Domain, item.Key); dup {
			return nil, fmt.Errorf("%s: %w: %s/%s", itemsFile, ErrDuplicateTopic, item.Domain, item.Key)
		}
		s.items[item.Domain] = append(s.items[item.Domain], item)
	}

	for _, t := range tdoc.Topics {
		topic, err := matching.CompileTopic(t.Name, t.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", topicsFile, err)
		}
		s.topics = append(s.topics, topic)
		ta := topicAnswers{references: t.References}
		for _, a := range t.Answers {
			re, err := regexp.Compile("(?i)" + a.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%s: topic %s answer %q: %w", topicsFile, t.Name, a.Pattern, err)
			}
			ta.answers = append(ta.answers, topicAnswer{pattern: re, text: a.Text})
		}
		s.answers[t.Name] = ta
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func toItem(raw itemDoc) (domain.KnowledgeItem, error) {
	dom, ok := domain.ParseDomain(raw.Domain)
	if !ok {
		return domain.KnowledgeItem{}, fmt.Errorf("%w: %q", ErrUnknownDomain, raw.Domain)
	}
	return domain.KnowledgeItem{
		Domain:        dom,
		Key:           raw.Key,
		Topic:         raw.Topic,
		Description:   raw.Description,
		Examples:      raw.Examples,
		RelatedTopics: raw.RelatedTopics,
		CommonIssues:  raw.CommonIssues,
		Solutions:     raw.Solutions,
	}, nil
}

func (s *Store) validate() error {
	have := make(map[domain.Domain]bool, len(s.infos))
	for _, info := range s.infos {
		have[info.Domain] = true
	}
	for _, d := range domain.All() {
		if !have[d] || len(s.items[d]) == 0 {
			return fmt.Errorf("%w: %s", ErrIncompleteDomain, d)
		}
	}
	return nil
}
