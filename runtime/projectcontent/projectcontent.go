// Package projectcontent implements the project-oriented agents' cross-file
// content router: given a free-form agent response and an active editor
// whose frontmatter references a family of project files, it extracts the
// response into structured buckets, classifies their content type, routes
// each bucket to the best-matching referenced file, and decides whether to
// update an existing section or append a new one.
package projectcontent

import (
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
)

// Buckets holds a response split into the six structured content
// categories a project document family can receive.
type Buckets struct {
	CurrentState string
	NewPlans     string
	Components   string
	Code         string
	Calculations string
	General      string
}

// StructuredResult carries any agent-structured fields (beyond free text)
// that feed directly into the Components/Code/Calculations buckets.
type StructuredResult struct {
	Components      []ComponentSpec
	CodeSnippets    []CodeSnippet
	Calculations    []Calculation
	Recommendations []string
}

// ComponentSpec is one hardware/software component the agent identified.
type ComponentSpec struct {
	Name         string
	Type         string
	Value        string
	Purpose      string
	Alternatives []string
}

// CodeSnippet is one code block the agent produced.
type CodeSnippet struct {
	Purpose  string
	Platform string
	Language string
	Code     string
}

// Calculation is one worked calculation the agent produced.
type Calculation struct {
	Type        string
	Formula     string
	Result      string
	Explanation string
}

// DocumentCandidate is a project file eligible to receive routed content,
// enriched with its title/description so routing can score relevance.
type DocumentCandidate struct {
	DocumentID         string
	Filename           string
	Title              string
	Description        string
	FrontmatterType    string
	FromReferenced     bool
	ReferencedCategory string
}

// RouteTarget is the outcome of routing a bucket to a file and section.
type RouteTarget struct {
	DocumentID string
	Filename   string
	Section    string
	MatchScore float64
}

// NewFileSuggestion is the payload offered when no existing file fits a
// substantial, specific bucket of content.
type NewFileSuggestion struct {
	SuggestedFilename    string
	SuggestedTitle       string
	SuggestedDescription string
	ContentType          string
	FileType             string
	FrontmatterKey       string
	Section              string
	SuggestionMessage    string
}

// Deps bundles the collaborators the router needs to read and write
// documents.
type Deps struct {
	Tools     toolclient.ToolClient
	UserID    string
	AgentName string
}

// EditOutcome reports how a bucket's content was applied.
type EditOutcome struct {
	Filename string
	Section  string
	Action   string // "updated", "appended", "proposed"
}

func clampString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
