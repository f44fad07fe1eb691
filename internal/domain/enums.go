package domain

import "strings"

// Domain is a coarse subject-matter bucket used to route a query.
type Domain string

const (
	DomainPython       Domain = "python"
	DomainGitHub       Domain = "github"
	DomainMCP          Domain = "mcp"
	DomainCICD         Domain = "cicd"
	DomainWeb          Domain = "web"
	DomainArchitecture Domain = "architecture"
	DomainDeployment   Domain = "deployment"
	DomainOperation    Domain = "operation"
	DomainTesting      Domain = "testing"
	DomainProject      Domain = "project"
	DomainTraining     Domain = "training"

	// General means no technical domain was detected.
	General Domain = "general"
)

var allDomains = []Domain{
	DomainPython, DomainGitHub, DomainMCP, DomainCICD, DomainWeb,
	DomainArchitecture, DomainDeployment, DomainOperation, DomainTesting,
	DomainProject, DomainTraining,
}

// All returns every domain in definition order. The order is the tie-break
// for every ranking in the system.
func All() []Domain {
	out := make([]Domain, len(allDomains))
	copy(out, allDomains)
	return out
}

// Index returns the definition position of d, or len(All()) for unknown values.
func (d Domain) Index() int {
	for i, v := range allDomains {
		if v == d {
			return i
		}
	}
	return len(allDomains)
}

// Valid reports whether d is one of the closed set (General excluded).
func (d Domain) Valid() bool {
	return d.Index() < len(allDomains)
}

// ParseDomain accepts the lowercase identifier or its uppercase spelling.
func ParseDomain(s string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if d.Valid() {
		return d, true
	}
	return "", false
}

type ResponseType string

const (
	ResponseDirect       ResponseType = "direct"
	ResponseExample      ResponseType = "example"
	ResponseTutorial     ResponseType = "tutorial"
	ResponseTroubleshoot ResponseType = "troubleshoot"
)

// ErrorFamily classifies error-report queries for canned remediation.
type ErrorFamily string

const (
	ErrorRuntime ErrorFamily = "runtime"
	ErrorImport  ErrorFamily = "import"
	ErrorSyntax  ErrorFamily = "syntax"
	ErrorType    ErrorFamily = "type"
	ErrorValue   ErrorFamily = "value"
)

// Stage names the selector stage that produced a response.
type Stage string

const (
	StageEscalation Stage = "escalation"
	StageOffline    Stage = "offline"
	StageIdentity   Stage = "identity"
	StageCombined   Stage = "combined"
	StageError      Stage = "error"
	StageGreeting   Stage = "greeting"
	StageTopic      Stage = "topic"
	StageDomain     Stage = "domain"
	StageCapability Stage = "capability"
	StageKnowledge  Stage = "knowledge"
	StageFallback   Stage = "fallback"
	StageRecovered  Stage = "recovered"
)
