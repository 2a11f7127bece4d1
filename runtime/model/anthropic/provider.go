// Package anthropic implements model.Provider on top of Anthropic's Claude
// Messages API. The adapter depends only on the narrow MessagesClient
// interface so tests can substitute a fake without touching the real SDK
// transport.
package anthropic

import (
	"context"
	"errors"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/adamsih300u/orchestrator/runtime/model"
)

// MessagesClient captures the subset of the Anthropic SDK used by the
// adapter, so tests can substitute a fake without touching real transport.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Options configures model-tier resolution for ModelClass.
type Options struct {
	DefaultModel string
	HighModel    string
	SmallModel   string
	MaxTokens    int64
	Temperature  float64
}

// Provider implements model.Provider on Claude Messages.
type Provider struct {
	msg          MessagesClient
	defaultModel string
	highModel    string
	smallModel   string
	maxTokens    int64
	temperature  float64
}

// New builds a Provider from an explicit MessagesClient (real or fake).
func New(msg MessagesClient, opts Options) (*Provider, error) {
	if msg == nil {
		return nil, errors.New("anthropic: messages client is required")
	}
	if opts.DefaultModel == "" {
		return nil, errors.New("anthropic: default model is required")
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Provider{
		msg:          msg,
		defaultModel: opts.DefaultModel,
		highModel:    opts.HighModel,
		smallModel:   opts.SmallModel,
		maxTokens:    maxTokens,
		temperature:  opts.Temperature,
	}, nil
}

// NewFromAPIKey constructs a Provider using the default Anthropic HTTP
// client, authenticated with apiKey.
func NewFromAPIKey(apiKey string, opts Options) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Messages, opts)
}

// Name implements model.Provider.
func (p *Provider) Name() string { return "anthropic" }

// Generate implements model.Provider.
func (p *Provider) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	modelID := p.resolveModel(req)

	messages := make([]sdk.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		text := sdk.NewTextBlock(m.Content)
		switch m.Role {
		case model.RoleAssistant:
			messages = append(messages, sdk.NewAssistantMessage(text))
		default:
			messages = append(messages, sdk.NewUserMessage(text))
		}
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(modelID),
		MaxTokens: p.maxTokens,
		Messages:  messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = int64(req.MaxTokens)
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	temp := p.temperature
	if req.Temperature > 0 {
		temp = req.Temperature
	}
	if temp > 0 {
		params.Temperature = sdk.Float(temp)
	}

	resp, err := p.msg.New(ctx, params)
	if err != nil {
		return model.Response{}, err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return model.Response{
		Text:  text,
		Model: string(resp.Model),
		Usage: model.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

func (p *Provider) resolveModel(req model.Request) string {
	if req.Model != "" {
		return req.Model
	}
	switch req.ModelClass {
	case model.ModelClassHighReasoning:
		if p.highModel != "" {
			return p.highModel
		}
	case model.ModelClassSmall:
		if p.smallModel != "" {
			return p.smallModel
		}
	}
	return p.defaultModel
}
