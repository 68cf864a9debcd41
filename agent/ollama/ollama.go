// Package ollama provides a reference biomedical research agent backed by a
// locally running Ollama server. It implements the ProcessQuery capability
// and returns a map result, exercising the bridge's map formatting path.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

const promptPrefix = "You are a biomedical research assistant. Answer the following research " +
	"query with a concise analysis, explicit conclusions, and recommendations for follow-up work."

// Options configure the Ollama agent.
type Options struct {
	// Host of the Ollama server. Defaults to OLLAMA_HOST or localhost:11434.
	Host string
	// Model identifier, e.g. "llama3.3".
	Model string
	// Timeout for the underlying HTTP client.
	Timeout time.Duration
}

// Agent wraps the Ollama generate API behind the ProcessQuery capability.
type Agent struct {
	client *ollama.Client
	model  string
}

// New creates a new Ollama agent.
func New(optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{
		Model:   "llama3.3",
		Timeout: 60 * time.Second,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	host := opts.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	httpClient := &http.Client{Timeout: opts.Timeout}

	return &Agent{client: ollama.NewClient(u, httpClient), model: opts.Model}, nil
}

// ProcessQuery executes the research query against the local model and
// returns a map carrying the generated text under the conventional "output"
// key.
func (a *Agent) ProcessQuery(ctx context.Context, query string) (any, error) {
	var text strings.Builder

	req := &ollama.GenerateRequest{
		Model:  a.model,
		Prompt: fmt.Sprintf("%s\n\n%s", promptPrefix, query),
	}

	if err := a.client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("ollama generate: %w", err)
	}

	return map[string]any{
		"output": text.String(),
		"model":  a.model,
	}, nil
}
