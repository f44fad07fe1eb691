package matching

import (
	"testing"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDomainInfos() []domain.DomainInfo {
	return []domain.DomainInfo{
		{Domain: domain.DomainTesting, Keywords: []string{"testing", "pytest", "coverage"}, ContextWords: []string{"quality"}, Priority: 1},
		{Domain: domain.DomainPython, Keywords: []string{"python", "pip", "pytest", "async", "type hints"}, ContextWords: []string{"code", "programming", "development", "script"}, Priority: 1},
		{Domain: domain.DomainMCP, Keywords: []string{"mcp", "model context protocol"}, ContextWords: []string{"server", "protocol", "integration"}, Priority: 1},
		{Domain: domain.DomainProject, Keywords: []string{"help", "about", "how", "what"}, ContextWords: []string{"explain", "tell", "show", "describe"}, Priority: 0},
	}
}

func TestDomainScorer_PythonAsyncTesting(t *testing.T) {
	s := NewDomainScorer(testDomainInfos())
	got := s.Score(NewQuery("python async testing"))

	require.Len(t, got, 3)
	assert.Equal(t, domain.DomainPython, got[0].Domain)
	assert.InDelta(t, 4.25, got[0].Score, 1e-9)
	assert.Equal(t, 2, got[0].KeywordHits)
	assert.Equal(t, domain.DomainTesting, got[1].Domain)
	assert.InDelta(t, 2.25, got[1].Score, 1e-9)
	// mcp has no hits but keeps its flat priority bonus
	assert.Equal(t, domain.DomainMCP, got[2].Domain)
	assert.InDelta(t, 0.25, got[2].Score, 1e-9)
	assert.Zero(t, got[2].KeywordHits)
}

func TestDomainScorer_ContextAndPriority(t *testing.T) {
	s := NewDomainScorer(testDomainInfos())
	got := s.Score(NewQuery("describe the server"))

	require.Len(t, got, 4)
	// mcp: 0.5 context + 0.25 priority; project: 0.5 context + 0 priority
	assert.Equal(t, domain.DomainMCP, got[0].Domain)
	assert.InDelta(t, 0.75, got[0].Score, 1e-9)
	assert.Equal(t, domain.DomainProject, got[1].Domain)
	assert.InDelta(t, 0.5, got[1].Score, 1e-9)
	// equal bonuses keep definition order
	assert.Equal(t, domain.DomainPython, got[2].Domain)
	assert.Equal(t, domain.DomainTesting, got[3].Domain)
	assert.InDelta(t, 0.25, got[3].Score, 1e-9)
}

func TestDomainScorer_TiesKeepDefinitionOrder(t *testing.T) {
	s := NewDomainScorer(testDomainInfos())
	got := s.Score(NewQuery("pytest"))

	require.Len(t, got, 3)
	assert.Equal(t, domain.DomainPython, got[0].Domain, "python is defined before testing")
	assert.Equal(t, got[0].Score, got[1].Score)
	assert.Equal(t, domain.DomainMCP, got[2].Domain)
}

func TestDomainScorer_OnlyZeroScoresExcluded(t *testing.T) {
	s := NewDomainScorer(testDomainInfos())
	got := s.Score(NewQuery("zebra xylophone quartz"))

	// project has priority 0 and no hits; the rest keep the flat bonus
	require.Len(t, got, 3)
	for i, want := range []domain.Domain{domain.DomainPython, domain.DomainMCP, domain.DomainTesting} {
		assert.Equal(t, want, got[i].Domain)
		assert.InDelta(t, 0.25, got[i].Score, 1e-9)
	}
	assert.Empty(t, s.Detected(NewQuery("zebra xylophone quartz")))
}

func TestDomainScorer_Idempotent(t *testing.T) {
	s := NewDomainScorer(testDomainInfos())
	q := NewQuery("how do mcp servers talk to python code?")
	assert.Equal(t, s.Score(q), s.Score(q))
}

func TestDomainScorer_Detected(t *testing.T) {
	s := NewDomainScorer(testDomainInfos())
	set := s.Detected(NewQuery("using mcp with python"))
	assert.True(t, set[domain.DomainMCP])
	assert.True(t, set[domain.DomainPython])
	assert.False(t, set[domain.DomainProject])
}
