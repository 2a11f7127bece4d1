// Package bedrock implements model.Provider on top of AWS Bedrock's
// Converse API via aws-sdk-go-v2/service/bedrockruntime, providing a third
// LLM gateway provider tier for deployments that route through AWS-hosted
// foundation models instead of calling Anthropic/OpenAI directly.
package bedrock

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/adamsih300u/orchestrator/runtime/model"
)

// ConverseClient captures the subset of the Bedrock runtime client used by
// the adapter, so tests can substitute a fake.
type ConverseClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Options configures the default model ID used when a request doesn't pin
// one explicitly.
type Options struct {
	DefaultModelID string
}

// Provider implements model.Provider on the Bedrock Converse API.
type Provider struct {
	client       ConverseClient
	defaultModel string
}

// New builds a Provider from an explicit ConverseClient (real or fake).
func New(client ConverseClient, opts Options) (*Provider, error) {
	if client == nil {
		return nil, errors.New("bedrock: converse client is required")
	}
	if opts.DefaultModelID == "" {
		return nil, errors.New("bedrock: default model id is required")
	}
	return &Provider{client: client, defaultModel: opts.DefaultModelID}, nil
}

// Name implements model.Provider.
func (p *Provider) Name() string { return "bedrock" }

// Generate implements model.Provider.
func (p *Provider) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = p.defaultModel
	}

	messages := make([]types.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := types.ConversationRoleUser
		if m.Role == model.RoleAssistant {
			role = types.ConversationRoleAssistant
		}
		messages = append(messages, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}},
		})
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:  &modelID,
		Messages: messages,
	}
	if req.System != "" {
		sys := req.System
		input.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: sys}}
	}
	if req.MaxTokens > 0 || req.Temperature > 0 {
		cfg := types.InferenceConfiguration{}
		if req.MaxTokens > 0 {
			mt := int32(req.MaxTokens)
			cfg.MaxTokens = &mt
		}
		if req.Temperature > 0 {
			t := float32(req.Temperature)
			cfg.Temperature = &t
		}
		input.InferenceConfig = &cfg
	}

	out, err := p.client.Converse(ctx, input)
	if err != nil {
		return model.Response{}, err
	}
	msgOutput, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return model.Response{}, errors.New("bedrock: unexpected converse output type")
	}
	var text string
	for _, block := range msgOutput.Value.Content {
		if tb, ok := block.(*types.ContentBlockMemberText); ok {
			text += tb.Value
		}
	}

	var usage model.Usage
	if out.Usage != nil {
		if out.Usage.InputTokens != nil {
			usage.InputTokens = int(*out.Usage.InputTokens)
		}
		if out.Usage.OutputTokens != nil {
			usage.OutputTokens = int(*out.Usage.OutputTokens)
		}
	}

	return model.Response{Text: text, Model: modelID, Usage: usage}, nil
}
