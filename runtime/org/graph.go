package org

import (
	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

// Build compiles the org workflow graph: prepare_context and analyze_intent
// run for every turn, then the graph forks into the synthesis path
// (resolve_references → synthesize_analysis) or a direct execute_command
// dispatch (project-capture state machine or inbox-management RPC), joining
// at format_response.
func Build(checkpointer checkpoint.Store, deps Deps) *workflow.Graph {
	return workflow.New(checkpointer).
		AddNode("prepare_context", prepareContext(deps)).
		AddNode("analyze_intent", analyzeIntentNode()).
		AddNode("resolve_references", resolveReferences(deps)).
		AddNode("synthesize_analysis", synthesizeAnalysis(deps)).
		AddNode("execute_org_command", executeOrgCommand(deps)).
		AddNode("format_response", formatResponse()).
		SetEntry("prepare_context").
		AddEdge("prepare_context", "analyze_intent").
		AddConditionalEdge("analyze_intent", routeFromIntent, map[string]string{
			"resolve_references": "resolve_references",
			"execute_command":    "execute_org_command",
		}).
		AddEdge("resolve_references", "synthesize_analysis").
		AddEdge("synthesize_analysis", "format_response").
		AddEdge("execute_org_command", "format_response").
		AddEdge("format_response", workflow.End)
}
