package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopics(t *testing.T) *TopicMatcher {
	t.Helper()
	var topics []Topic
	for _, row := range [][2]string{
		{"config", "config|setting|property"},
		{"i18n", "i18n|language|translation|international"},
		{"test", "test|assert|coverage|quality"},
	} {
		tp, err := CompileTopic(row[0], row[1])
		require.NoError(t, err)
		topics = append(topics, tp)
	}
	return NewTopicMatcher(topics)
}

func TestTopicMatcher_InsertionOrder(t *testing.T) {
	m := testTopics(t)
	got := m.Match(NewQuery("Test the LANGUAGE config"))
	assert.Equal(t, []string{"config", "i18n", "test"}, got)
}

func TestTopicMatcher_EmptyMeansFallThrough(t *testing.T) {
	m := testTopics(t)
	assert.Empty(t, m.Match(NewQuery("hello there")))
}

func TestCompileTopic_BadPattern(t *testing.T) {
	_, err := CompileTopic("broken", "(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
