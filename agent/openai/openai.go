// Package openai provides a reference biomedical research agent backed by
// the OpenAI Chat Completions API. It implements the Go capability.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

const systemPrompt = "You are a biomedical research assistant. Answer research queries with a " +
	"concise analysis, explicit conclusions, and recommendations for follow-up work. " +
	"Cite primary literature where possible."

// Options configure the OpenAI agent.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Agent wraps the OpenAI Chat Completions API behind the Go capability.
type Agent struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI agent using the official client (API key from the
// environment).
func New(optFns ...func(o *Options)) *Agent {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI agent from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agent{client: client, opts: opts}
}

// Go executes the research query and returns the model's answer as a string.
func (a *Agent) Go(ctx context.Context, query string) (any, error) {
	params := openai.ChatCompletionNewParams{
		Model: a.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(query),
		},
		Temperature:         openai.Float(a.opts.Temperature),
		MaxCompletionTokens: openai.Int(a.opts.MaxCompletionTokens),
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
