package core

import (
	"context"

	"github.com/google/uuid"
)

// The external Biomni agent is opaque to the bridge beyond its callable
// surface. Rather than requiring one fixed interface, the bridge probes a
// closed set of capabilities in a fixed priority order. An agent satisfies
// the bridge by implementing any one of them.

// Goer is the primary capability of a Biomni-style agent. Go executes a
// free-text biomedical research query and returns the raw result, which may
// be a string, a map, or any other value.
type Goer interface {
	Go(ctx context.Context, query string) (any, error)
}

// Runner is the first fallback capability probed when an agent does not
// implement Goer.
type Runner interface {
	Run(ctx context.Context, query string) (any, error)
}

// QueryProcessor is the second fallback capability.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, query string) (any, error)
}

// Func is the direct-callable agent form: the resolved agent value is itself
// a function. It is probed last, after the named capabilities.
type Func func(ctx context.Context, query string) (any, error)

// Method names accepted as capability overrides in configuration. The
// override, when set and exposed by the agent, takes precedence over the
// fixed probe order.
const (
	MethodGo           = "go"
	MethodRun          = "run"
	MethodProcessQuery = "process_query"
)

// AgentInfo carries identifying details about a resolved agent used in
// contexts and log records. Module and Attribute echo the import specifier
// the agent was resolved from.
type AgentInfo struct{ Module, Attribute string }

// NewID generates a unique identifier for invocations.
func NewID() string { return uuid.NewString() }
