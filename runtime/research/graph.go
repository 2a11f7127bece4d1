package research

import (
	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

// PrepareTurnInput builds the input State for a new turn, applying the
// follow-up detection rule: when the latest checkpoint offered a quick
// answer and the new message is a short affirmation, the turn skips
// straight past quick_answer_check into the full pipeline.
func PrepareTurnInput(cp checkpoint.Checkpoint, userID, query string) workflow.State {
	state := workflow.State{"user_id": userID, "query": query}
	quickAnswerProvided, _ := cp.Values["quick_answer_provided"].(bool)
	if quickAnswerProvided && IsAffirmativeFollowUp(query) {
		state["skip_quick_answer"] = true
	}
	return state
}

// Build compiles the research workflow graph described in nodes.go: entry
// at quick_answer_check, fanning through cache/round1/gap-analysis/web
// rounds to final_synthesis and an optional format_data hand-off.
func Build(checkpointer checkpoint.Store, deps Deps) *workflow.Graph {
	return workflow.New(checkpointer).
		AddNode("quick_answer_check", quickAnswerCheck(deps)).
		AddNode("cache_check", cacheCheck(deps)).
		AddNode("query_expansion", queryExpansion(deps)).
		AddNode("round1_parallel_search", round1ParallelSearch(deps)).
		AddNode("assess_combined_round1", assessCombinedRound1(deps)).
		AddNode("gap_analysis", gapAnalysis(deps)).
		AddNode("round2_gap_filling", round2GapFilling(deps)).
		AddNode("web_round1", webRound1(deps)).
		AddNode("assess_web_round1", assessWebRound1(deps)).
		AddNode("gap_analysis_web", gapAnalysisWeb(deps)).
		AddNode("web_round2", webRound2(deps)).
		AddNode("detect_query_type", detectQueryType(deps)).
		AddNode("final_synthesis", finalSynthesis(deps)).
		AddNode("format_data", formatData(deps)).
		SetEntry("quick_answer_check").
		AddConditionalEdge("quick_answer_check", routeQuickAnswerCheck, map[string]string{
			"quick_answer": workflow.End,
			"full_research": "cache_check",
		}).
		AddConditionalEdge("cache_check", routeCacheCheck, map[string]string{
			"use_cache":  "detect_query_type",
			"do_research": "query_expansion",
		}).
		AddEdge("query_expansion", "round1_parallel_search").
		AddEdge("round1_parallel_search", "assess_combined_round1").
		AddConditionalEdge("assess_combined_round1", routeAssessCombinedRound1, map[string]string{
			"sufficient":         "detect_query_type",
			"needs_gap_filling":  "gap_analysis",
			"needs_web_round2":   "web_round2",
		}).
		AddConditionalEdge("gap_analysis", routeGapAnalysis, map[string]string{
			"round2_local": "round2_gap_filling",
			"needs_web":    "web_round1",
		}).
		AddConditionalEdge("round2_gap_filling", routeRound2GapFilling, map[string]string{
			"sufficient": "detect_query_type",
			"needs_web":  "web_round1",
		}).
		AddEdge("web_round1", "assess_web_round1").
		AddConditionalEdge("assess_web_round1", routeAssessWebRound1, map[string]string{
			"sufficient":             "detect_query_type",
			"needs_web_gap_analysis": "gap_analysis_web",
		}).
		AddConditionalEdge("gap_analysis_web", routeGapAnalysisWeb, map[string]string{
			"web_round2": "web_round2",
			"sufficient": "detect_query_type",
		}).
		AddEdge("web_round2", "detect_query_type").
		AddEdge("detect_query_type", "final_synthesis").
		AddConditionalEdge("final_synthesis", routeFinalSynthesis, map[string]string{
			"format":   "format_data",
			"complete": workflow.End,
		}).
		AddEdge("format_data", workflow.End)
}
