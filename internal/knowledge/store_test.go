package knowledge

import (
	"testing"
	"testing/fstest"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadStore(t *testing.T) *Store {
	t.Helper()
	s, err := LoadDefault()
	require.NoError(t, err)
	return s
}

func TestLoadDefault_EveryDomainComplete(t *testing.T) {
	s := loadStore(t)

	infos := make(map[domain.Domain]bool)
	for _, info := range s.DomainInfos() {
		infos[info.Domain] = true
		assert.NotEmpty(t, info.Keywords, "domain %s has no keywords", info.Domain)
	}
	for _, d := range domain.All() {
		assert.True(t, infos[d], "domain %s has no scoring metadata", d)
		assert.NotEmpty(t, s.ByDomain(d), "domain %s has no items", d)
	}
	assert.Len(t, s.TechnicalProfiles(), len(domain.All()))
	assert.NotEmpty(t, s.Topics())
}

func TestGet_ByKeyAndTopic(t *testing.T) {
	s := loadStore(t)

	item, ok := s.Get(domain.DomainGitHub, "actions")
	require.True(t, ok)
	assert.Equal(t, "GitHub Actions", item.Topic)

	item, ok = s.Get(domain.DomainCICD, "ci/cd pipelines")
	require.True(t, ok)
	assert.Equal(t, "pipelines", item.Key)

	_, ok = s.Get(domain.DomainWeb, "missing")
	assert.False(t, ok)
}

func TestItems_DomainOrder(t *testing.T) {
	s := loadStore(t)
	items := s.Items()
	require.NotEmpty(t, items)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Domain.Index(), items[i].Domain.Index())
	}
}

func TestTopicAnswer_RunTests(t *testing.T) {
	s := loadStore(t)
	text, refs, ok := s.TopicAnswer("test", matching.NewQuery("how do I run tests?"))
	require.True(t, ok)
	assert.Contains(t, text, "pytest")
	assert.Contains(t, refs, "tests/")
}

func TestTopicAnswer_HowToValidateBeforeFeatureList(t *testing.T) {
	s := loadStore(t)
	text, _, ok := s.TopicAnswer("validation", matching.NewQuery("how do I validate my settings"))
	require.True(t, ok)
	assert.Contains(t, text, "To validate configurations")
}

func TestTopicAnswer_NoPatternMatch(t *testing.T) {
	s := loadStore(t)
	_, _, ok := s.TopicAnswer("general", matching.NewQuery("help"))
	assert.False(t, ok)
	_, _, ok = s.TopicAnswer("nope", matching.NewQuery("anything"))
	assert.False(t, ok)
}

func TestDomainResponse_OnlyCannedDomains(t *testing.T) {
	s := loadStore(t)
	py, ok := s.DomainResponse(domain.DomainPython)
	require.True(t, ok)
	assert.Contains(t, py.Text, "Python")
	assert.Len(t, py.CodeExamples, 2)

	_, ok = s.DomainResponse(domain.DomainWeb)
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domainsFile)
}

func TestLoad_DuplicateKey(t *testing.T) {
	fsys := fstest.MapFS{
		domainsFile: {Data: []byte("domains: []\n")},
		topicsFile:  {Data: []byte("topics: []\n")},
		itemsFile: {Data: []byte(`
project_item: {domain: project, key: p, topic: P}
items:
  - {domain: web, key: api, topic: API}
  - {domain: web, key: api, topic: API again}
`)},
	}
	_, err := Load(fsys)
	assert.ErrorIs(t, err, ErrDuplicateTopic)
}

func TestLoad_IncompleteDomain(t *testing.T) {
	fsys := fstest.MapFS{
		domainsFile: {Data: []byte("domains: [{domain: web, keywords: [api]}]\n")},
		topicsFile:  {Data: []byte("topics: []\n")},
		itemsFile: {Data: []byte(`
project_item: {domain: project, key: p, topic: P}
items:
  - {domain: web, key: api, topic: API}
`)},
	}
	_, err := Load(fsys)
	assert.ErrorIs(t, err, ErrIncompleteDomain)
}

func TestLoad_UnknownDomain(t *testing.T) {
	fsys := fstest.MapFS{
		domainsFile: {Data: []byte("domains: [{domain: cobol}]\n")},
		topicsFile:  {Data: []byte("topics: []\n")},
		itemsFile:   {Data: []byte("items: []\n")},
	}
	_, err := Load(fsys)
	assert.ErrorIs(t, err, ErrUnknownDomain)
}

func TestLoad_BadTopicPattern(t *testing.T) {
	fsys := fstest.MapFS{
		domainsFile: {Data: []byte("domains: []\n")},
		itemsFile:   {Data: []byte("project_item: {domain: project, key: p, topic: P}\nitems: []\n")},
		topicsFile:  {Data: []byte("topics: [{name: broken, pattern: '('}]\n")},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadDir_EmptyMeansEmbedded(t *testing.T) {
	s, err := LoadDir("")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Items())
}
