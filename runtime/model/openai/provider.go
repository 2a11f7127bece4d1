// Package openai implements model.Provider on top of OpenAI's Chat
// Completions API via the official github.com/openai/openai-go SDK,
// providing the secondary provider the LLM gateway can select per turn.
package openai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/adamsih300u/orchestrator/runtime/model"
)

// ChatClient captures the subset of the openai-go client used by the
// adapter, so tests can substitute a fake.
type ChatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Options configures model-tier resolution for ModelClass.
type Options struct {
	DefaultModel string
	SmallModel   string
}

// Provider implements model.Provider on OpenAI Chat Completions.
type Provider struct {
	chat         ChatClient
	defaultModel string
	smallModel   string
}

// New builds a Provider from an explicit ChatClient (real or fake).
func New(chat ChatClient, opts Options) (*Provider, error) {
	if chat == nil {
		return nil, errors.New("openai: chat client is required")
	}
	if opts.DefaultModel == "" {
		return nil, errors.New("openai: default model is required")
	}
	return &Provider{chat: chat, defaultModel: opts.DefaultModel, smallModel: opts.SmallModel}, nil
}

// NewFromAPIKey constructs a Provider using the default openai-go HTTP
// client, authenticated with apiKey.
func NewFromAPIKey(apiKey string, opts Options) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return New(client.Chat.Completions, opts)
}

// Name implements model.Provider.
func (p *Provider) Name() string { return "openai" }

// Generate implements model.Provider.
func (p *Provider) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	modelID := p.resolveModel(req)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    modelID,
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSONSchema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := p.chat.New(ctx, params)
	if err != nil {
		return model.Response{}, err
	}
	if len(resp.Choices) == 0 {
		return model.Response{}, errors.New("openai: empty choices in response")
	}
	return model.Response{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: model.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

func (p *Provider) resolveModel(req model.Request) string {
	if req.Model != "" {
		return req.Model
	}
	if req.ModelClass == model.ModelClassSmall && p.smallModel != "" {
		return p.smallModel
	}
	return p.defaultModel
}
