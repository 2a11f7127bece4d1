// Package research implements the multi-round research agent: quick-answer
// short-circuit, conversation-cache reuse, a parallel first research round
// over local documents and the web, LLM-driven sufficiency assessment and
// gap analysis feeding a second round, query-type detection, and final
// synthesis with an optional hand-off to data formatting. Built as a
// runtime/workflow.Graph.
package research

import (
	"context"
	"strings"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
)

// Round names a research stage for observability.
type Round string

const (
	RoundQuickAnswerCheck Round = "quick_answer_check"
	RoundCacheCheck       Round = "cache_check"
	RoundInitialLocal     Round = "initial_local"
	RoundRound2GapFilling Round = "round_2_gap_filling"
	RoundWebRound1        Round = "web_round_1"
	RoundAssessWebRound1  Round = "assess_web_round_1"
	RoundGapAnalysisWeb   Round = "gap_analysis_web"
	RoundWebRound2        Round = "web_round_2"
	RoundFinalSynthesis   Round = "final_synthesis"
)

// BestSource names which branch an Assessment judged most informative.
type BestSource string

const (
	BestSourceLocal BestSource = "local"
	BestSourceWeb   BestSource = "web"
	BestSourceBoth  BestSource = "both"
)

// Assessment is the LLM-produced sufficiency verdict over a research round.
type Assessment struct {
	Sufficient   bool       `json:"sufficient"`
	HasRelevant  bool       `json:"has_relevant_info"`
	Confidence   float64    `json:"confidence"`
	MissingInfo  []string   `json:"missing_info"`
	Reasoning    string     `json:"reasoning"`
	BestSource   BestSource `json:"best_source"`
	NeedsMoreLoc bool       `json:"needs_more_local"`
	NeedsMoreWeb bool       `json:"needs_more_web"`
}

// GapSeverity grades how badly a research round missed the mark.
type GapSeverity string

const (
	GapMinor    GapSeverity = "minor"
	GapModerate GapSeverity = "moderate"
	GapSevere   GapSeverity = "severe"
)

// GapAnalysis is the LLM-produced diagnosis of what a round is missing.
type GapAnalysis struct {
	MissingEntities  []string    `json:"missing_entities"`
	SuggestedQueries []string    `json:"suggested_queries"`
	NeedsWebSearch   bool        `json:"needs_web_search"`
	GapSeverity      GapSeverity `json:"gap_severity"`
	Reasoning        string      `json:"reasoning"`
}

// QueryType classifies whether a query has one correct answer.
type QueryType string

const (
	QueryObjective  QueryType = "objective"
	QuerySubjective QueryType = "subjective"
	QueryMixed      QueryType = "mixed"
)

// QueryTypeDetection is the LLM-produced classification driving whether
// synthesis presents alternatives.
type QueryTypeDetection struct {
	QueryType            QueryType `json:"query_type"`
	Confidence           float64   `json:"confidence"`
	ShouldPresentOptions bool      `json:"should_present_options"`
	NumOptions           *int      `json:"num_options"`
	Reasoning            string    `json:"reasoning"`
}

// quickAnswerSchema, assessmentSchema, gapSchema, and queryTypeSchema are
// the JSON Schemas the LLM gateway validates each node's structured output
// against.
const (
	quickAnswerSchema = `{
		"type": "object",
		"required": ["can_answer_quickly", "confidence"],
		"properties": {
			"can_answer_quickly": {"type": "boolean"},
			"confidence": {"type": "number"},
			"quick_answer": {"type": ["string", "null"]},
			"reasoning": {"type": "string"}
		}
	}`
	assessmentSchema = `{
		"type": "object",
		"required": ["sufficient", "has_relevant_info", "confidence"],
		"properties": {
			"sufficient": {"type": "boolean"},
			"has_relevant_info": {"type": "boolean"},
			"confidence": {"type": "number"},
			"missing_info": {"type": "array", "items": {"type": "string"}},
			"reasoning": {"type": "string"},
			"best_source": {"type": "string", "enum": ["local", "web", "both"]},
			"needs_more_local": {"type": "boolean"},
			"needs_more_web": {"type": "boolean"}
		}
	}`
	gapSchema = `{
		"type": "object",
		"required": ["needs_web_search", "gap_severity"],
		"properties": {
			"missing_entities": {"type": "array", "items": {"type": "string"}},
			"suggested_queries": {"type": "array", "items": {"type": "string"}},
			"needs_web_search": {"type": "boolean"},
			"gap_severity": {"type": "string", "enum": ["minor", "moderate", "severe"]},
			"reasoning": {"type": "string"}
		}
	}`
	queryTypeSchema = `{
		"type": "object",
		"required": ["query_type", "confidence", "should_present_options"],
		"properties": {
			"query_type": {"type": "string", "enum": ["objective", "subjective", "mixed"]},
			"confidence": {"type": "number"},
			"should_present_options": {"type": "boolean"},
			"num_options": {"type": ["integer", "null"]},
			"reasoning": {"type": "string"}
		}
	}`
)

// affirmativeTokens are the short-reply affirmations that resume a paused
// quick-answer offer into a deeper search (follow-up detection).
var affirmativeTokens = map[string]bool{
	"yes": true, "y": true, "ok": true, "okay": true, "sure": true,
	"proceed": true, "search": true, "more": true, "deeper": true,
}

var affirmativePhrases = []string{
	"search more", "deeper search", "more information", "find more",
	"tell me more", "search deeper", "do a deeper search",
}

// IsAffirmativeFollowUp implements the follow-up detection heuristic: a
// lowercased message of at most 5 tokens drawn from the affirmative
// vocabulary, or containing one of the longer affirmative phrases.
func IsAffirmativeFollowUp(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, phrase := range affirmativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	tokens := strings.Fields(lower)
	if len(tokens) == 0 || len(tokens) > 5 {
		return false
	}
	for _, tok := range tokens {
		if !affirmativeTokens[strings.Trim(tok, ".,!?")] {
			return false
		}
	}
	return true
}

// ToolAnalysis is the per-turn categorization of which tools a query is
// likely to need, surfaced in telemetry; the research graph always runs
// both branches at round 1 regardless of this analysis.
type ToolAnalysis struct {
	CoreTools        []string
	ConditionalTools []string
}

// AnalyzeTools categorizes a query into core vs. conditional tool needs
// using simple lexical cues (a cheap heuristic, not an LLM call, since the
// result only informs telemetry rather than control flow).
func AnalyzeTools(query string) ToolAnalysis {
	lower := strings.ToLower(query)
	core := []string{"search_documents", "search_and_crawl"}
	var conditional []string
	if strings.Contains(lower, "chart") || strings.Contains(lower, "graph") || strings.Contains(lower, "plot") {
		conditional = append(conditional, "generate_chart")
	}
	if strings.Contains(lower, "image") || strings.Contains(lower, "picture") || strings.Contains(lower, "diagram") {
		conditional = append(conditional, "generate_image")
	}
	if strings.Contains(lower, "weather") || strings.Contains(lower, "forecast") {
		conditional = append(conditional, "get_weather")
	}
	return ToolAnalysis{CoreTools: core, ConditionalTools: conditional}
}

// Deps bundles the collaborators every research node needs.
type Deps struct {
	Gateway      *model.Gateway
	ProviderName string
	Tools        toolclient.ToolClient
	// FormatData invokes the data-formatting agent; nil disables hand-off
	// (format_data then becomes a no-op passthrough).
	FormatData func(ctx context.Context, response string) (string, error)
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
