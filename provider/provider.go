// Package provider implements the host-facing tool provider surface for the
// Biomni bridge: credential validation and the tool catalog. Since the Biomni
// agent runs locally there are no remote credentials; validation checks that
// the configured agent is resolvable and exposes a usable capability.
package provider

import (
	"fmt"

	"github.com/hupe1980/biomnibridge/adapter"
	"github.com/hupe1980/biomnibridge/locator"
	"github.com/hupe1980/biomnibridge/logging"
	"github.com/hupe1980/biomnibridge/tool"
)

// CredentialValidationError signals that the bridge configuration does not
// yield a usable agent. The host displays Message to the operator.
type CredentialValidationError struct {
	Err error
}

func (e *CredentialValidationError) Error() string {
	return fmt.Sprintf("biomni agent not found or not properly configured: %v", e.Err)
}

// Unwrap returns the underlying resolution or probing error.
func (e *CredentialValidationError) Unwrap() error { return e.Err }

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// ImportSpecifier locates the external agent.
	ImportSpecifier string
	// Method is the capability probed first.
	Method string
	// Locator resolves and caches the agent. Defaults to locator.New().
	// Share one Locator between provider and tool so validation warms the
	// same cache invocations use.
	Locator *locator.Locator
	// Tool is the tool instance announced by Tools(). Defaults to a
	// tool.New() sharing this provider's locator.
	Tool tool.Tool
	// Logger for validation records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Provider validates bridge configuration and announces the available tools.
type Provider struct {
	importSpecifier string
	method          string
	locator         *locator.Locator
	tool            tool.Tool
	logger          logging.Logger
}

// New constructs a Provider with optional overrides.
func New(optFns ...func(o *Options)) *Provider {
	opts := Options{
		ImportSpecifier: "biomni:agent",
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Locator == nil {
		opts.Locator = locator.New(func(o *locator.Options) {
			o.Logger = opts.Logger
		})
	}

	if opts.Tool == nil {
		opts.Tool = tool.New(func(o *tool.Options) {
			o.ImportSpecifier = opts.ImportSpecifier
			o.Method = opts.Method
			o.Locator = opts.Locator
			o.Logger = opts.Logger
		})
	}

	return &Provider{
		importSpecifier: opts.ImportSpecifier,
		method:          opts.Method,
		locator:         opts.Locator,
		tool:            opts.Tool,
		logger:          opts.Logger,
	}
}

// ValidateCredentials checks that the configured agent resolves and exposes a
// usable capability. A failed resolution leaves the locator cache empty so a
// later attempt retries with corrected configuration.
func (p *Provider) ValidateCredentials() error {
	agent, err := p.locator.Resolve(p.importSpecifier)
	if err != nil {
		p.logger.Error("provider.validate.failed", "specifier", p.importSpecifier, "error", err.Error())
		return &CredentialValidationError{Err: err}
	}

	if _, _, err := adapter.Select(agent, p.method); err != nil {
		p.logger.Error("provider.validate.no_method", "specifier", p.importSpecifier, "error", err.Error())
		return &CredentialValidationError{Err: err}
	}

	p.logger.Info("provider.validate.success", "specifier", p.importSpecifier)

	return nil
}

// Tools returns the tools available from this provider.
func (p *Provider) Tools() []tool.Tool {
	return []tool.Tool{p.tool}
}
