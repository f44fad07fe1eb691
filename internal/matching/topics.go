package matching

import (
	"fmt"
	"regexp"
)

// Topic is one row of the topic table.
type Topic struct {
	Name    string
	Pattern *regexp.Regexp
}

// CompileTopic builds a case-insensitive topic row.
func CompileTopic(name, pattern string) (Topic, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Topic{}, fmt.Errorf("compile topic %q: %w", name, err)
	}
	return Topic{Name: name, Pattern: re}, nil
}

// TopicMatcher maps a query to the topics whose pattern matches, in table
// order. It holds no per-query state.
type TopicMatcher struct {
	topics []Topic
}

func NewTopicMatcher(topics []Topic) *TopicMatcher {
	return &TopicMatcher{topics: append([]Topic(nil), topics...)}
}

// Match returns every matching topic name in insertion order. An empty
// result means the caller falls through to its next stage.
func (m *TopicMatcher) Match(q Query) []string {
	var out []string
	for _, t := range m.topics {
		if t.Pattern.MatchString(q.Text) {
			out = append(out, t.Name)
		}
	}
	return out
}
