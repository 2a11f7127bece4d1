package model

import (
	"context"
	"fmt"

	"github.com/adamsih300u/orchestrator/runtime/toolerrors"
)

// Gateway resolves a provider and concrete model per turn and centralizes
// the schema-validated-output contract so every node shares one fallback
// discipline.
type Gateway struct {
	providers map[string]Provider
	// Default is the provider name consulted when a call passes an empty
	// providerName (every node in this codebase uses the
	// default provider; multi-provider routing is exposed for callers that
	// want to pick per agent).
	Default string
}

// NewGateway builds a Gateway over the given named providers. defaultName
// must be a key of providers.
func NewGateway(providers map[string]Provider, defaultName string) (*Gateway, error) {
	if len(providers) == 0 {
		return nil, toolerrors.New(toolerrors.KindConfig, "gateway: at least one provider is required")
	}
	if _, ok := providers[defaultName]; !ok {
		return nil, toolerrors.Errorf(toolerrors.KindConfig, "gateway: default provider %q not registered", defaultName)
	}
	return &Gateway{providers: providers, Default: defaultName}, nil
}

func (g *Gateway) provider(name string) (Provider, error) {
	if name == "" {
		name = g.Default
	}
	p, ok := g.providers[name]
	if !ok {
		return nil, toolerrors.Errorf(toolerrors.KindConfig, "gateway: unknown provider %q", name)
	}
	return p, nil
}

// GenerateText issues req against the named provider (empty uses Default)
// and returns the free-text response.
func (g *Gateway) GenerateText(ctx context.Context, providerName string, req Request) (string, error) {
	p, err := g.provider(providerName)
	if err != nil {
		return "", err
	}
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return "", toolerrors.Wrap(toolerrors.KindTransport, err)
	}
	return resp.Text, nil
}

// GenerateJSON issues req (with req.JSONSchema set) and unmarshals the
// validated result into out. On any parse or validation failure it returns
// an *toolerrors.Error of KindLLMParse so callers can apply their documented
// conservative fallback instead of guessing.
func (g *Gateway) GenerateJSON(ctx context.Context, providerName string, req Request, out any) error {
	p, err := g.provider(providerName)
	if err != nil {
		return err
	}
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return toolerrors.Wrap(toolerrors.KindTransport, err)
	}
	if err := ParseJSON(resp.Text, req.JSONSchema, out); err != nil {
		return toolerrors.Wrap(toolerrors.KindLLMParse, fmt.Errorf("parse llm json response: %w", err))
	}
	return nil
}
