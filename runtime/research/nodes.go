package research

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

func str(state workflow.State, key string) string {
	v, _ := state[key].(string)
	return v
}

func boolean(state workflow.State, key string) bool {
	v, _ := state[key].(bool)
	return v
}

func userID(state workflow.State) string {
	return str(state, "user_id")
}

// quickAnswerCheck asks the LLM whether the query can be answered directly
// without running the full research pipeline.
func quickAnswerCheck(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		if boolean(state, "skip_quick_answer") {
			// A resumed follow-up turn must not re-trigger the quick-answer
			// route on a stale research_complete left by the prior turn's
			// quick-answer offer.
			return workflow.State{"research_complete": false}, nil
		}
		query := str(state, "query")
		req := model.Request{
			System: "Decide whether this question can be answered directly from general " +
				"knowledge without researching the user's documents or the web. Respond with " +
				"JSON: can_answer_quickly, confidence, quick_answer (or null), reasoning.",
			Messages:    []model.Message{{Role: model.RoleUser, Content: query}},
			ModelClass:  model.ModelClassSmall,
			JSONSchema:  []byte(quickAnswerSchema),
			Temperature: 0.2,
		}
		var out struct {
			CanAnswerQuickly bool    `json:"can_answer_quickly"`
			Confidence       float64 `json:"confidence"`
			QuickAnswer      *string `json:"quick_answer"`
			Reasoning        string  `json:"reasoning"`
		}
		if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
			return workflow.State{}, nil
		}
		if out.CanAnswerQuickly && out.QuickAnswer != nil && *out.QuickAnswer != "" {
			partial := withSharedMemoryPatch(state, &sharedmemory.Memory{PrimaryAgentSelected: "full_research_agent"})
			partial["quick_answer_provided"] = true
			partial["quick_answer_content"] = *out.QuickAnswer
			partial["final_response"] = *out.QuickAnswer + "\n\nWant me to do a deeper search on this?"
			partial["research_complete"] = true
			return partial, nil
		}
		return workflow.State{}, nil
	}
}

func routeQuickAnswerCheck(state workflow.State) string {
	if boolean(state, "research_complete") {
		return "quick_answer"
	}
	return "full_research"
}

// cacheCheck looks for fresh, relevant prior research before doing any new
// I/O.
func cacheCheck(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		resp, err := deps.Tools.SearchConversationCache(ctx, toolclient.SearchConversationCacheRequest{
			Query:          str(state, "query"),
			FreshnessHours: 24,
			UserID:         userID(state),
		})
		if err != nil || resp == nil || !resp.CacheHit || len(resp.Entries) == 0 {
			return workflow.State{"cache_hit": false}, nil
		}
		var b strings.Builder
		for _, e := range resp.Entries {
			fmt.Fprintf(&b, "[%s]: %s\n", e.AgentName, e.Content)
		}
		return workflow.State{
			"cache_hit":      true,
			"cached_context": b.String(),
		}, nil
	}
}

func routeCacheCheck(state workflow.State) string {
	if boolean(state, "cache_hit") {
		return "use_cache"
	}
	return "do_research"
}

// queryExpansion produces query variations and named entities to widen
// round 1 recall.
func queryExpansion(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		query := str(state, "query")
		resp, err := deps.Tools.ExpandQuery(ctx, toolclient.ExpandQueryRequest{
			Query:         query,
			NumVariations: 3,
			UserID:        userID(state),
		})
		if err != nil || resp == nil {
			return workflow.State{"expanded_queries": []string{query}}, nil
		}
		expanded := resp.ExpandedQueries
		if len(expanded) == 0 {
			expanded = []string{query}
		}
		return workflow.State{
			"expanded_queries": expanded,
			"key_entities":     resp.KeyEntities,
		}, nil
	}
}

func toStringSlice(v any) []string {
	out, _ := v.([]string)
	return out
}

// round1ParallelSearch fans out the top-3 expanded queries against local
// documents and a single web search concurrently; failures on either
// branch degrade to empty results rather than failing the turn.
func round1ParallelSearch(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		query := str(state, "query")
		expanded := toStringSlice(state["expanded_queries"])
		if len(expanded) == 0 {
			expanded = []string{query}
		}
		top := expanded
		if len(top) > 3 {
			top = top[:3]
		}

		var wg sync.WaitGroup
		var localContent, webContent, localErr, webErr string

		wg.Add(2)
		go func() {
			defer wg.Done()
			var b strings.Builder
			for _, q := range top {
				resp, err := deps.Tools.SearchDocuments(ctx, toolclient.SearchDocumentsRequest{
					Query: q, UserID: userID(state), Limit: 10,
				})
				if err != nil {
					localErr = err.Error()
					continue
				}
				for _, r := range resp.Results {
					fmt.Fprintf(&b, "%s: %s\n", r.Title, r.ContentPreview)
				}
			}
			localContent = b.String()
		}()
		go func() {
			defer wg.Done()
			resp, err := deps.Tools.SearchAndCrawl(ctx, toolclient.SearchAndCrawlRequest{
				Query: query, MaxResults: 10, UserID: userID(state),
			})
			if err != nil {
				webErr = err.Error()
				return
			}
			var b strings.Builder
			for _, r := range resp.Results {
				fmt.Fprintf(&b, "%s (%s): %s\n", r.Title, r.URL, r.Content)
			}
			webContent = b.String()
		}()
		wg.Wait()

		out := withSharedMemoryPatch(state, &sharedmemory.Memory{
			PreviousToolsUsed: []string{"search_documents", "search_and_crawl"},
		})
		out["round1_results"] = localContent
		out["web_round1_results"] = webContent
		if localErr != "" {
			out["round1_error"] = localErr
		}
		if webErr != "" {
			out["web_round1_error"] = webErr
		}
		return out, nil
	}
}

func assessSufficiency(deps Deps, systemPrefix string) func(ctx context.Context, local, web string) (Assessment, error) {
	return func(ctx context.Context, local, web string) (Assessment, error) {
		prompt := systemPrefix + "\n\nLocal results:\n" + trim(local, 1500) + "\n\nWeb results:\n" + trim(web, 1500)
		req := model.Request{
			System:      "Judge whether the gathered research is sufficient to answer the user's query. Respond with the documented JSON schema.",
			Messages:    []model.Message{{Role: model.RoleUser, Content: prompt}},
			ModelClass:  model.ModelClassDefault,
			JSONSchema:  []byte(assessmentSchema),
			Temperature: 0.2,
		}
		var out Assessment
		if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
			return Assessment{Sufficient: false, Reasoning: "assessment unavailable"}, err
		}
		return out, nil
	}
}

// assessCombinedRound1 judges whether round 1's local+web content is
// sufficient to answer the query.
func assessCombinedRound1(deps Deps) workflow.Node {
	assess := assessSufficiency(deps, "Assess round 1 combined local and web research.")
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		a, _ := assess(ctx, str(state, "round1_results"), str(state, "web_round1_results"))
		return workflow.State{"round1_assessment": a, "round1_sufficient": a.Sufficient}, nil
	}
}

func routeAssessCombinedRound1(state workflow.State) string {
	a, _ := state["round1_assessment"].(Assessment)
	if a.Sufficient {
		return "sufficient"
	}
	if a.NeedsMoreWeb {
		return "needs_web_round2"
	}
	return "needs_gap_filling"
}

// gapAnalysis diagnoses what round 1 missed and whether it warrants
// skipping straight to a web round.
func gapAnalysis(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		a, _ := state["round1_assessment"].(Assessment)
		prompt := fmt.Sprintf("Missing info reported: %v\nReasoning: %s\nQuery: %s",
			a.MissingInfo, a.Reasoning, str(state, "query"))
		req := model.Request{
			System:      "Diagnose the research gap and suggest follow-up queries. Respond with the documented JSON schema.",
			Messages:    []model.Message{{Role: model.RoleUser, Content: prompt}},
			ModelClass:  model.ModelClassDefault,
			JSONSchema:  []byte(gapSchema),
			Temperature: 0.2,
		}
		var out GapAnalysis
		if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
			out = GapAnalysis{NeedsWebSearch: true, GapSeverity: GapModerate, Reasoning: "gap analysis unavailable"}
		}
		gaps := out.SuggestedQueries
		if len(gaps) == 0 {
			gaps = out.MissingEntities
		}
		if len(gaps) == 0 {
			gaps = []string{str(state, "query")}
		}
		return workflow.State{"gap_analysis": out, "identified_gaps": gaps}, nil
	}
}

func routeGapAnalysis(state workflow.State) string {
	g, _ := state["gap_analysis"].(GapAnalysis)
	if g.GapSeverity == GapSevere && g.NeedsWebSearch {
		return "needs_web"
	}
	return "round2_local"
}

// round2GapFilling runs targeted local searches against the identified
// gaps.
func round2GapFilling(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		gaps := toStringSlice(state["identified_gaps"])
		if len(gaps) > 3 {
			gaps = gaps[:3]
		}
		var b strings.Builder
		for _, q := range gaps {
			resp, err := deps.Tools.SearchDocuments(ctx, toolclient.SearchDocumentsRequest{
				Query: q, UserID: userID(state), Limit: 10,
			})
			if err != nil {
				continue
			}
			for _, r := range resp.Results {
				fmt.Fprintf(&b, "%s: %s\n", r.Title, r.ContentPreview)
			}
		}
		content := b.String()
		return workflow.State{
			"round2_results":    content,
			"round2_sufficient": len(content) > 100,
		}, nil
	}
}

func routeRound2GapFilling(state workflow.State) string {
	if boolean(state, "round2_sufficient") {
		return "sufficient"
	}
	return "needs_web"
}

// webRound1 runs a single web search-and-crawl as the first web-only round.
func webRound1(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		resp, err := deps.Tools.SearchAndCrawl(ctx, toolclient.SearchAndCrawlRequest{
			Query: str(state, "query"), MaxResults: 10, UserID: userID(state),
		})
		if err != nil || resp == nil {
			return workflow.State{"web_round1_results": "", "web_permission_granted": true}, nil
		}
		var b strings.Builder
		for _, r := range resp.Results {
			fmt.Fprintf(&b, "%s (%s): %s\n", r.Title, r.URL, r.Content)
		}
		return workflow.State{
			"web_round1_results":     b.String(),
			"web_permission_granted": true,
		}, nil
	}
}

// assessWebRound1 judges whether the web-only round is sufficient on its
// own.
func assessWebRound1(deps Deps) workflow.Node {
	assess := assessSufficiency(deps, "Assess web round 1 research (no local documents).")
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		a, _ := assess(ctx, "", str(state, "web_round1_results"))
		return workflow.State{"web_round1_assessment": a, "web_round1_sufficient": a.Sufficient}, nil
	}
}

func routeAssessWebRound1(state workflow.State) string {
	if boolean(state, "web_round1_sufficient") {
		return "sufficient"
	}
	return "needs_web_gap_analysis"
}

// gapAnalysisWeb diagnoses what the web-only round missed.
func gapAnalysisWeb(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		a, _ := state["web_round1_assessment"].(Assessment)
		prompt := fmt.Sprintf("Missing info reported: %v\nReasoning: %s\nQuery: %s",
			a.MissingInfo, a.Reasoning, str(state, "query"))
		req := model.Request{
			System:      "Diagnose the web research gap. Respond with the documented JSON schema.",
			Messages:    []model.Message{{Role: model.RoleUser, Content: prompt}},
			ModelClass:  model.ModelClassDefault,
			JSONSchema:  []byte(gapSchema),
			Temperature: 0.2,
		}
		var out GapAnalysis
		if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
			out = GapAnalysis{NeedsWebSearch: false, GapSeverity: GapMinor, Reasoning: "gap analysis unavailable"}
		}
		gaps := out.SuggestedQueries
		if len(gaps) == 0 {
			gaps = []string{str(state, "query")}
		}
		return workflow.State{"web_gap_analysis": out, "web_identified_gaps": gaps}, nil
	}
}

func routeGapAnalysisWeb(state workflow.State) string {
	g, _ := state["web_gap_analysis"].(GapAnalysis)
	if g.NeedsWebSearch {
		return "web_round2"
	}
	return "sufficient"
}

// webRound2 runs one more targeted search-and-crawl using the top gap
// query, or the original query if none was identified.
func webRound2(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		query := str(state, "query")
		if gaps := toStringSlice(state["web_identified_gaps"]); len(gaps) > 0 {
			query = gaps[0]
		} else if gaps := toStringSlice(state["identified_gaps"]); len(gaps) > 0 {
			query = gaps[0]
		}
		resp, err := deps.Tools.SearchAndCrawl(ctx, toolclient.SearchAndCrawlRequest{
			Query: query, MaxResults: 10, UserID: userID(state),
		})
		if err != nil || resp == nil {
			return workflow.State{"web_round2_results": ""}, nil
		}
		var b strings.Builder
		for _, r := range resp.Results {
			fmt.Fprintf(&b, "%s (%s): %s\n", r.Title, r.URL, r.Content)
		}
		return workflow.State{"web_round2_results": b.String()}, nil
	}
}

// detectQueryType classifies the query to decide whether synthesis should
// present alternatives.
func detectQueryType(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		req := model.Request{
			System: "Classify this query as objective, subjective, or mixed, and decide " +
				"whether the answer should present 2-3 named options. Respond with the " +
				"documented JSON schema.",
			Messages:    []model.Message{{Role: model.RoleUser, Content: str(state, "query")}},
			ModelClass:  model.ModelClassSmall,
			JSONSchema:  []byte(queryTypeSchema),
			Temperature: 0.2,
		}
		var out QueryTypeDetection
		if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
			out = QueryTypeDetection{QueryType: QueryObjective, ShouldPresentOptions: false}
		}
		return workflow.State{
			"query_type":            out.QueryType,
			"query_type_detection":  out,
			"should_present_options": out.ShouldPresentOptions,
			"num_options":           out.NumOptions,
		}, nil
	}
}

func synthesisPrompt(qt QueryTypeDetection) string {
	switch {
	case qt.QueryType == QuerySubjective || (qt.QueryType == QueryMixed && qt.ShouldPresentOptions):
		n := 3
		if qt.NumOptions != nil {
			n = *qt.NumOptions
		}
		return fmt.Sprintf("Synthesize a final answer that presents %d named options, each with a short rationale.", n)
	case qt.QueryType == QueryMixed:
		return "Synthesize a primary answer, then explicitly mention plausible alternatives."
	default:
		return "Synthesize a single, direct final answer."
	}
}

// finalSynthesis assembles the accumulated research context and produces
// the turn's response.
func finalSynthesis(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		var b strings.Builder
		sources := []string{}
		if cached := str(state, "cached_context"); cached != "" {
			b.WriteString("Cached research:\n" + cached + "\n\n")
			sources = append(sources, "cache")
		}
		if r1 := trim(str(state, "round1_results"), 2000); r1 != "" {
			b.WriteString("Round 1 local:\n" + r1 + "\n\n")
			sources = append(sources, "round1_local")
		}
		if r2 := trim(str(state, "round2_results"), 1500); r2 != "" {
			b.WriteString("Round 2 local:\n" + r2 + "\n\n")
			sources = append(sources, "round2_local")
		}
		if w1 := trim(str(state, "web_round1_results"), 2000); w1 != "" {
			b.WriteString("Web round 1:\n" + w1 + "\n\n")
			sources = append(sources, "web_round1")
		}
		if w2 := trim(str(state, "web_round2_results"), 1500); w2 != "" {
			b.WriteString("Web round 2:\n" + w2 + "\n\n")
			sources = append(sources, "web_round2")
		}

		qt, _ := state["query_type_detection"].(QueryTypeDetection)
		req := model.Request{
			System:      synthesisPrompt(qt),
			Messages:    []model.Message{{Role: model.RoleUser, Content: "Query: " + str(state, "query") + "\n\n" + b.String()}},
			ModelClass:  model.ModelClassHighReasoning,
			Temperature: 0.3,
		}
		resp, err := deps.Gateway.GenerateText(ctx, deps.ProviderName, req)
		if err != nil {
			resp = "I was unable to synthesize a final answer from the gathered research."
		}

		out := withSharedMemoryPatch(state, &sharedmemory.Memory{PrimaryAgentSelected: "full_research_agent"})
		out["final_response"] = resp
		out["sources_used"] = sources
		out["research_complete"] = true
		if formatData, recommend := shouldRecommendFormatting(resp); recommend {
			out["routing_recommendation"] = "data_formatting"
			_ = formatData
		}
		return out, nil
	}
}

// shouldRecommendFormatting is a lightweight heuristic flagging responses
// that look like tabular or enumerable data worth structured formatting.
func shouldRecommendFormatting(response string) (string, bool) {
	lower := strings.ToLower(response)
	if strings.Count(response, "\n-") >= 4 || strings.Contains(lower, "| ---") {
		return response, true
	}
	return response, false
}

func routeFinalSynthesis(state workflow.State) string {
	if str(state, "routing_recommendation") == "data_formatting" {
		return "format"
	}
	return "complete"
}

// formatData hands the synthesized response to the data-formatting agent,
// when one is configured.
func formatData(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		if deps.FormatData == nil {
			return workflow.State{}, nil
		}
		formatted, err := deps.FormatData(ctx, str(state, "final_response"))
		if err != nil {
			return workflow.State{}, nil
		}
		return workflow.State{"final_response": formatted}, nil
	}
}
