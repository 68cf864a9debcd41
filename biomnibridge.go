// Package biomnibridge provides a high-level façade over the bridge
// components (configuration, agent locator, invocation adapter, provider and
// tool) enabling a host agent-orchestration platform to expose an externally
// supplied Biomni biomedical research agent as a plugin tool. Most
// applications interact with this package by:
//  1. Registering their agent module (locator.RegisterModule or a plugin dir)
//  2. Creating a Bridge via New() (configuration from BIOMNI_* env / file)
//  3. Handing Provider() and Tool() to the host, or calling Query() directly
//
// The façade delegates resolution to locator.Locator and invocation to
// adapter.Adapter while keeping setup ergonomics concise. All defaults are
// safe for local development; production deployments typically supply a
// structured logger and an explicit configuration.
package biomnibridge

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/biomnibridge/adapter"
	"github.com/hupe1980/biomnibridge/config"
	"github.com/hupe1980/biomnibridge/locator"
	"github.com/hupe1980/biomnibridge/logging"
	"github.com/hupe1980/biomnibridge/provider"
	"github.com/hupe1980/biomnibridge/tool"
)

// Options configures the Bridge instance.
type Options struct {
	// Config overrides the loaded configuration. Nil loads from environment
	// and config file via config.Load().
	Config *config.Config
	// Registry to resolve agent modules against. Defaults to the process-wide
	// locator.Default() registry.
	Registry *locator.Registry
	// Logger (defaults to a structured logger built from the configuration's
	// log_level / log_format).
	Logger logging.Logger
}

// Bridge is the high-level façade aggregating the bridge components.
type Bridge struct {
	cfg      *config.Config
	locator  *locator.Locator
	tool     *tool.BiomniTool
	provider *provider.Provider
	logger   logging.Logger
}

// New creates a Bridge with optional overrides. The agent itself is resolved
// lazily on the first invocation (or on ValidateCredentials), so New succeeds
// even before the agent module is registered.
func New(optFns ...func(o *Options)) (*Bridge, error) {
	opts := Options{Registry: locator.Default()}

	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}

		cfg = loaded
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(&logging.LoggerConfig{
			Level:     logging.ParseLevel(cfg.LogLevel),
			Format:    cfg.LogFormat,
			Component: "biomnibridge",
		})
	}

	loc := locator.New(func(o *locator.Options) {
		o.Registry = opts.Registry
		o.SearchPath = cfg.PluginDir
		o.Logger = logger
	})

	ad := adapter.New(func(o *adapter.Options) {
		o.MaxOutputChars = cfg.MaxOutputChars
		o.Logger = logger
	})

	biomniTool := tool.New(func(o *tool.Options) {
		o.ImportSpecifier = cfg.AgentImport
		o.Method = cfg.AgentMethod
		o.MaxExecutionTime = time.Duration(cfg.MaxExecutionTime) * time.Second
		o.MaxOutputChars = cfg.MaxOutputChars
		o.IncludeCitations = cfg.IncludeCitations
		o.Locator = loc
		o.Adapter = ad
		o.Logger = logger
	})

	prov := provider.New(func(o *provider.Options) {
		o.ImportSpecifier = cfg.AgentImport
		o.Method = cfg.AgentMethod
		o.Locator = loc
		o.Tool = biomniTool
		o.Logger = logger
	})

	return &Bridge{cfg: cfg, locator: loc, tool: biomniTool, provider: prov, logger: logger}, nil
}

// Provider returns the host-facing tool provider.
func (b *Bridge) Provider() *provider.Provider { return b.provider }

// Tool returns the host-facing Biomni tool.
func (b *Bridge) Tool() tool.Tool { return b.tool }

// ResetAgent discards the cached agent reference so the next invocation
// re-resolves with the current configuration.
func (b *Bridge) ResetAgent() { b.locator.Reset() }

// Query is a synchronous helper that invokes the Biomni tool with a single
// research query and returns the display text.
func (b *Bridge) Query(ctx context.Context, query string) (string, error) {
	res, err := b.tool.Call(ctx, map[string]any{"research_query": query})
	if err != nil {
		return "", err
	}

	text, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("unexpected tool result type %T", res)
	}

	return text, nil
}
