package research_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint/inmem"
	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/research"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

// fakeTools implements toolclient.ToolClient by embedding the nil interface
// and overriding only the methods the research graph calls.
type fakeTools struct {
	toolclient.ToolClient
	docs   []toolclient.DocumentSummary
	web    []toolclient.WebResult
	cache  *toolclient.SearchConversationCacheResponse
	expand *toolclient.ExpandQueryResponse
}

func (f *fakeTools) SearchDocuments(_ context.Context, _ toolclient.SearchDocumentsRequest) (*toolclient.SearchDocumentsResponse, error) {
	return &toolclient.SearchDocumentsResponse{Results: f.docs}, nil
}

func (f *fakeTools) SearchAndCrawl(_ context.Context, _ toolclient.SearchAndCrawlRequest) (*toolclient.SearchAndCrawlResponse, error) {
	return &toolclient.SearchAndCrawlResponse{Results: f.web}, nil
}

func (f *fakeTools) SearchConversationCache(_ context.Context, _ toolclient.SearchConversationCacheRequest) (*toolclient.SearchConversationCacheResponse, error) {
	if f.cache != nil {
		return f.cache, nil
	}
	return &toolclient.SearchConversationCacheResponse{}, nil
}

func (f *fakeTools) ExpandQuery(_ context.Context, req toolclient.ExpandQueryRequest) (*toolclient.ExpandQueryResponse, error) {
	if f.expand != nil {
		return f.expand, nil
	}
	return &toolclient.ExpandQueryResponse{ExpandedQueries: []string{req.Query}}, nil
}

// fakeProvider returns canned JSON/text responses keyed by a naive
// substring match on the system prompt, letting one fake drive an entire
// graph invocation through several distinct LLM calls.
type fakeProvider struct {
	responses []string
	calls     int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, _ model.Request) (model.Response, error) {
	if f.calls >= len(f.responses) {
		return model.Response{Text: f.responses[len(f.responses)-1]}, nil
	}
	resp := f.responses[f.calls]
	f.calls++
	return model.Response{Text: resp}, nil
}

func newDeps(t *testing.T, tools toolclient.ToolClient, provider model.Provider) research.Deps {
	t.Helper()
	gw, err := model.NewGateway(map[string]model.Provider{"fake": provider}, "fake")
	require.NoError(t, err)
	return research.Deps{Gateway: gw, ProviderName: "fake", Tools: tools}
}

func TestIsAffirmativeFollowUp(t *testing.T) {
	assert.True(t, research.IsAffirmativeFollowUp("yes"))
	assert.True(t, research.IsAffirmativeFollowUp("sure ok"))
	assert.True(t, research.IsAffirmativeFollowUp("do a deeper search"))
	assert.False(t, research.IsAffirmativeFollowUp("no thanks"))
	assert.False(t, research.IsAffirmativeFollowUp("yes I would like you to go read the entire archive for me please"))
}

func TestQuickAnswerCheck_ShortCircuitsToEnd(t *testing.T) {
	store := inmem.New()
	provider := &fakeProvider{responses: []string{
		`{"can_answer_quickly": true, "confidence": 0.9, "quick_answer": "Paris", "reasoning": "general knowledge"}`,
	}}
	tools := &fakeTools{}
	g := research.Build(store, newDeps(t, tools, provider))

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "rt1"},
		workflow.State{"user_id": "u1", "query": "what is the capital of France?"})
	require.NoError(t, err)
	assert.Equal(t, true, final["research_complete"])
	assert.Contains(t, final["final_response"], "Paris")
}

func TestFullResearch_RunsThroughSynthesis(t *testing.T) {
	store := inmem.New()
	provider := &fakeProvider{responses: []string{
		`{"can_answer_quickly": false, "confidence": 0.1, "quick_answer": null}`,
		`{"sufficient": true, "has_relevant_info": true, "confidence": 0.8, "best_source": "both"}`,
		`{"query_type": "objective", "confidence": 0.9, "should_present_options": false}`,
		`Final synthesized answer.`,
	}}
	tools := &fakeTools{
		docs: []toolclient.DocumentSummary{{Title: "doc1", ContentPreview: "relevant content"}},
		web:  []toolclient.WebResult{{Title: "web1", URL: "http://example.com", Content: "web content"}},
	}
	g := research.Build(store, newDeps(t, tools, provider))

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "rt2"},
		workflow.State{"user_id": "u1", "query": "explain quantum entanglement"})
	require.NoError(t, err)
	assert.Equal(t, true, final["research_complete"])
	assert.Equal(t, "Final synthesized answer.", final["final_response"])
}

func TestCacheHit_SkipsToDetectQueryType(t *testing.T) {
	store := inmem.New()
	provider := &fakeProvider{responses: []string{
		`{"can_answer_quickly": false, "confidence": 0.1, "quick_answer": null}`,
		`{"query_type": "objective", "confidence": 0.9, "should_present_options": false}`,
		`Answer from cache.`,
	}}
	tools := &fakeTools{
		cache: &toolclient.SearchConversationCacheResponse{
			CacheHit: true,
			Entries:  []toolclient.CacheEntry{{Content: "cached info", AgentName: "research"}},
		},
	}
	g := research.Build(store, newDeps(t, tools, provider))

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "rt3"},
		workflow.State{"user_id": "u1", "query": "what did we discuss last time?"})
	require.NoError(t, err)
	assert.Equal(t, "Answer from cache.", final["final_response"])
}

func TestAnalyzeTools(t *testing.T) {
	ta := research.AnalyzeTools("please make a chart of this data")
	assert.Contains(t, ta.ConditionalTools, "generate_chart")
}
