// Package anthropic provides a reference biomedical research agent backed by
// the Anthropic Claude Messages API. It implements the Run capability.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are a biomedical research assistant. Answer research queries with a " +
	"concise analysis, explicit conclusions, and recommendations for follow-up work. " +
	"Cite primary literature where possible."

// Options configure the Anthropic agent.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Agent wraps the Anthropic Messages API behind the Run capability.
type Agent struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic agent using the official client.
func New(optFns ...func(o *Options)) *Agent {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.2,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Agent{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic agent from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.2,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agent{client: client, opts: opts}
}

// Run executes the research query and returns the model's answer as a string.
func (a *Agent) Run(ctx context.Context, query string) (any, error) {
	params := anthropic.MessageNewParams{
		Model:       a.opts.Model,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: anthropic.Float(a.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var b strings.Builder

	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}

	return b.String(), nil
}
