package org

import "strings"

// IntentType classifies an incoming org-workflow message.
type IntentType string

const (
	IntentSynthesis      IntentType = "synthesis"
	IntentProjectCapture IntentType = "project_capture"
	IntentManagement     IntentType = "management"
)

// ManagementOp further refines IntentManagement.
type ManagementOp string

const (
	OpAdd         ManagementOp = "add"
	OpList        ManagementOp = "list"
	OpToggle      ManagementOp = "toggle"
	OpUpdate      ManagementOp = "update"
	OpSchedule    ManagementOp = "schedule"
	OpArchiveDone ManagementOp = "archive_done"
)

var synthesisKeywords = []string{
	"compare", "synthesize", "analyze", "based on", "using",
	"from the", "in the linked", "across", "between",
}

var projectCaptureLeadPhrases = []string{
	"start project", "create project", "new project", "project:",
}

// classifyIntent implements the intent split: synthesis requires both a
// detected link and a synthesis keyword; project_capture is a leading
// phrase match; everything else is management, further refined by keyword.
func classifyIntent(message string, links []LinkRef) (IntentType, ManagementOp) {
	lower := strings.ToLower(message)

	if len(links) > 0 {
		for _, kw := range synthesisKeywords {
			if strings.Contains(lower, kw) {
				return IntentSynthesis, ""
			}
		}
	}

	for _, lead := range projectCaptureLeadPhrases {
		if strings.HasPrefix(strings.TrimSpace(lower), lead) {
			return IntentProjectCapture, ""
		}
	}

	return IntentManagement, inferManagementOp(lower)
}

func inferManagementOp(lower string) ManagementOp {
	switch {
	case containsAny(lower, "add ", "capture ", "note ", "todo ", "remember ", "save "):
		return OpAdd
	case containsAny(lower, "list", "show", "review", "inbox", "what's in", "see my"):
		return OpList
	case containsAny(lower, "done", "complete", "toggle", "mark as done"):
		return OpToggle
	case containsAny(lower, "edit", "update", "change", "modify"):
		return OpUpdate
	case containsAny(lower, "schedule", "set schedule", "set date"):
		return OpSchedule
	case containsAny(lower, "archive", "archive done", "clean up done"):
		return OpArchiveDone
	default:
		return OpList
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// inferDocumentType guesses a referenced document's type from its filename,
// used to decide whether resolve_references requests a project assessment.
func inferDocumentType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "reference") || strings.Contains(lower, "ref"):
		return "reference"
	case strings.Contains(lower, "project") || strings.Contains(lower, "plan"):
		return "project"
	case strings.HasSuffix(lower, ".org"):
		return "org"
	case strings.HasSuffix(lower, ".md"):
		return "markdown"
	default:
		return "unknown"
	}
}
