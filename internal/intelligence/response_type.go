package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/matching"
)

var (
	projectFeatureTerms = []string{"project", "feature", "features", "capabilities", "functionality"}
	pythonFeatureTerms  = []string{
		"python feature", "python features", "type hints", "async", "await",
		"decorator", "decorators", "dataclass", "dataclasses", "generator", "generators",
	}
	troubleshootWords = []string{"error", "issue", "problem", "fix", "debug", "troubleshoot"}
	howToWords        = []string{"how", "learn", "teach", "explain", "guide", "tutorial", "steps"}
	exampleWords      = []string{"example", "sample", "show", "code", "snippet"}
)

func responseTypeRules(top domain.KnowledgeItem) []matching.Rule[domain.ResponseType] {
	inDomain := func(ds ...domain.Domain) bool {
		for _, d := range ds {
			if top.Domain == d {
				return true
			}
		}
		return false
	}
	return []matching.Rule[domain.ResponseType]{
		{Name: "project-feature", When: matching.Terms(projectFeatureTerms...), Then: domain.ResponseDirect},
		{Name: "python-feature", When: matching.Terms(pythonFeatureTerms...), Then: domain.ResponseDirect},
		{
			Name: "pipeline",
			When: func(q matching.Query) bool {
				return inDomain(domain.DomainCICD, domain.DomainGitHub) && q.AnyPhrase("workflow", "pipeline")
			},
			Then: domain.ResponseTutorial,
		},
		{
			Name: "mcp-integration",
			When: func(q matching.Query) bool {
				return inDomain(domain.DomainMCP) && q.HasPhrase("integrat")
			},
			Then: domain.ResponseTutorial,
		},
		{Name: "troubleshoot", When: matching.Terms(troubleshootWords...), Then: domain.ResponseTroubleshoot},
		{Name: "how-to", When: matching.Terms(howToWords...), Then: domain.ResponseTutorial},
		{Name: "example", When: matching.Terms(exampleWords...), Then: domain.ResponseExample},
	}
}

// ClassifyResponseType picks the template used to render top for q.
func ClassifyResponseType(q matching.Query, top domain.KnowledgeItem) domain.ResponseType {
	if rt, _, ok := matching.FirstMatch(responseTypeRules(top), q); ok {
		return rt
	}
	return domain.ResponseDirect
}

const (
	noCodePlaceholder    = "# No example available"
	noExamplePlaceholder = "No example available"
	defaultCheck         = "the documentation"
	defaultSolution      = "review the logs"
	defaultStep          = "Read documentation"
	paddingStep          = "Practice and experiment"
	tutorialSteps        = 3
)

func codeLanguage(d domain.Domain) string {
	switch d {
	case domain.DomainPython:
		return "python"
	case domain.DomainWeb:
		return "javascript"
	default:
		return "bash"
	}
}

// FillTemplate renders item with the template for rt.
func FillTemplate(rt domain.ResponseType, item domain.KnowledgeItem, q matching.Query) string {
	switch rt {
	case domain.ResponseExample:
		code := domain.CoalesceStr(domain.FirstOf(item.Examples), noCodePlaceholder)
		return fmt.Sprintf("Here's an example of %s:\n\n```%s\n%s\n```\n\n%s",
			item.Topic, codeLanguage(item.Domain), code, item.Description)

	case domain.ResponseTroubleshoot:
		check := domain.CoalesceStr(domain.FirstOf(item.CommonIssues), defaultCheck)
		solution := domain.CoalesceStr(domain.FirstOf(item.Solutions), defaultSolution)
		return fmt.Sprintf("To fix %s:\n\n1. First, check %s\n2. Then, try %s\n3. If that doesn't work, contact support\n\nCommon cause: %s",
			strings.TrimSpace(q.Raw), check, solution, item.Description)

	case domain.ResponseTutorial:
		steps := append([]string(nil), item.Solutions...)
		if len(steps) > tutorialSteps {
			steps = steps[:tutorialSteps]
		}
		if len(steps) == 0 {
			steps = []string{defaultStep}
		}
		for len(steps) < tutorialSteps {
			steps = append(steps, paddingStep)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Let's learn about %s:\n\n", item.Topic)
		for i, s := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		b.WriteString("\n")
		b.WriteString(item.Description)
		return b.String()

	default:
		example := domain.CoalesceStr(domain.FirstOf(item.Examples), noExamplePlaceholder)
		return fmt.Sprintf("%s\n\nExample:\n%s", item.Description, example)
	}
}
