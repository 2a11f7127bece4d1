package intent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/intent"
	"github.com/adamsih300u/orchestrator/runtime/model"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, _ model.Request) (model.Response, error) {
	if f.err != nil {
		return model.Response{}, f.err
	}
	return model.Response{Text: f.text}, nil
}

func newGateway(t *testing.T, text string) *model.Gateway {
	t.Helper()
	gw, err := model.NewGateway(map[string]model.Provider{"fake": &fakeProvider{text: text}}, "fake")
	require.NoError(t, err)
	return gw
}

func TestClassify_ValidResponse(t *testing.T) {
	gw := newGateway(t, `{"target_agent": "research", "action_intent": "search", "confidence": 0.9, "reasoning": "user asked a factual question"}`)
	c := intent.New(gw, "")

	res := c.Classify(context.Background(), "what's the weather tomorrow", intent.Context{})
	assert.Equal(t, "research", res.TargetAgent)
	assert.Equal(t, "search", res.ActionIntent)
	assert.Equal(t, 0.9, res.Confidence)
}

func TestClassify_MalformedResponseFallsBackToChat(t *testing.T) {
	gw := newGateway(t, "not json at all")
	c := intent.New(gw, "")

	res := c.Classify(context.Background(), "hello", intent.Context{})
	assert.Equal(t, intent.ChatFallback, res.TargetAgent)
	assert.Equal(t, float64(0), res.Confidence)
}

func TestClassify_MissingTargetAgentFallsBack(t *testing.T) {
	gw := newGateway(t, `{"action_intent": "search", "confidence": 0.5}`)
	c := intent.New(gw, "")

	res := c.Classify(context.Background(), "hello", intent.Context{})
	assert.Equal(t, intent.ChatFallback, res.TargetAgent)
}
