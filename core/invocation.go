package core

import (
	"context"
	"time"

	"github.com/hupe1980/biomnibridge/logging"
)

// Request is an ephemeral value holding the free-text query and any
// per-request configuration overrides. It is not persisted.
type Request struct {
	// Query is the free-text biomedical research query. Must be non-empty.
	Query string
	// Method optionally overrides the capability probed first
	// (one of MethodGo, MethodRun, MethodProcessQuery).
	Method string
	// MaxOutputChars bounds the formatted result length in runes.
	// Zero means the adapter default.
	MaxOutputChars int
}

// Result is the ephemeral formatted outcome of a single invocation.
type Result struct {
	// Text is the formatted, length-bounded result handed back to the host.
	Text string
	// Raw is the unformatted agent return value, for callers that render
	// structured results themselves. Not retained beyond the invocation.
	Raw any
	// Method names the capability that produced the result.
	Method string
	// Truncated reports whether Text was cut to the configured bound.
	Truncated bool
	// Duration is the wall-clock time of the agent call.
	Duration time.Duration
}

// InvocationContext scopes a single host request. Each invocation is a
// stateless request/response; the context carries only the identifiers and
// logger needed for correlation.
type InvocationContext struct {
	ctx          context.Context
	invocationID string
	agentInfo    AgentInfo
	logger       logging.Logger
}

// NewInvocationContext constructs an invocation context with a fresh
// invocation ID.
func NewInvocationContext(ctx context.Context, agentInfo AgentInfo, logger logging.Logger) *InvocationContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	return &InvocationContext{
		ctx:          ctx,
		invocationID: NewID(),
		agentInfo:    agentInfo,
		logger:       logger,
	}
}

// WithContext returns a copy of the invocation context bound to ctx,
// preserving the invocation ID. Used to apply deadlines to an invocation
// already in flight.
func (ic *InvocationContext) WithContext(ctx context.Context) *InvocationContext {
	nc := *ic
	nc.ctx = ctx

	return &nc
}

// Context returns the context associated with the invocation.
func (ic *InvocationContext) Context() context.Context { return ic.ctx }

// InvocationID returns the unique identifier of this invocation.
func (ic *InvocationContext) InvocationID() string { return ic.invocationID }

// AgentInfo returns identifying details of the resolved agent.
func (ic *InvocationContext) AgentInfo() AgentInfo { return ic.agentInfo }

// Logger returns the logger associated with the invocation.
func (ic *InvocationContext) Logger() logging.Logger { return ic.logger }
