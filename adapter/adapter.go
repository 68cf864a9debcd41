package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/biomnibridge/core"
	"github.com/hupe1980/biomnibridge/logging"
)

// methodDirect names the selection outcome when the agent value itself is
// callable rather than exposing a named capability.
const methodDirect = "call"

// Options holds configuration overrides passed to New().
type Options struct {
	// MaxOutputChars bounds formatted result length in runes.
	MaxOutputChars int
	// Logger for invocation records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Adapter invokes a resolved agent object and formats the response. It holds
// no mutable state after construction and is safe for concurrent use; each
// invocation is a single stateless request/response.
type Adapter struct {
	maxOutputChars int
	logger         logging.Logger
}

// New constructs an Adapter with optional overrides.
func New(optFns ...func(o *Options)) *Adapter {
	opts := Options{
		MaxOutputChars: DefaultMaxOutputChars,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Adapter{maxOutputChars: opts.MaxOutputChars, logger: opts.Logger}
}

// Invoke selects a capability on agent, calls it with the request query and
// returns the formatted result. Failures are either configuration errors
// (see IsConfigurationError) or *ExecutionError.
func (a *Adapter) Invoke(invCtx *core.InvocationContext, agent any, req core.Request) (*core.Result, error) {
	logger := invCtx.Logger()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	call, method, err := Select(agent, req.Method)
	if err != nil {
		logger.Error("agent.invoke.no_method", "invocation_id", invCtx.InvocationID(), "override", req.Method)
		return nil, err
	}

	logger.Debug("agent.invoke.start", "invocation_id", invCtx.InvocationID(), "method", method)

	start := time.Now()

	raw, err := call(invCtx.Context(), query)
	if err != nil {
		logger.Error("agent.invoke.error", "invocation_id", invCtx.InvocationID(), "method", method, "error", err.Error())
		return nil, &ExecutionError{Method: method, Err: err}
	}

	dur := time.Since(start)

	maxChars := req.MaxOutputChars
	if maxChars <= 0 {
		maxChars = a.maxOutputChars
	}

	text, truncated := FormatResult(raw, maxChars)

	logger.Info("agent.invoke.success", "invocation_id", invCtx.InvocationID(), "method", method,
		"duration_ms", dur.Milliseconds(), "truncated", truncated)

	return &core.Result{Text: text, Raw: raw, Method: method, Truncated: truncated, Duration: dur}, nil
}

// Select resolves the capability to call, first match wins. The override
// only short-circuits the fixed order when the agent actually exposes it;
// otherwise probing falls through to the defaults. Callers that only need to
// know whether an agent is usable (e.g. credential validation) can discard
// the bound method.
func Select(agent any, override string) (core.Func, string, error) {
	if override != "" {
		if call, ok := probe(agent, override); ok {
			return call, override, nil
		}
	}

	for _, name := range []string{core.MethodGo, core.MethodRun, core.MethodProcessQuery} {
		if call, ok := probe(agent, name); ok {
			return call, name, nil
		}
	}

	switch f := agent.(type) {
	case core.Func:
		return f, methodDirect, nil
	case func(ctx context.Context, query string) (any, error):
		return f, methodDirect, nil
	}

	return nil, "", fmt.Errorf("%w: agent is %T", ErrNoUsableMethod, agent)
}

// probe attempts a bound-method lookup for a single named capability.
func probe(agent any, name string) (core.Func, bool) {
	switch name {
	case core.MethodGo:
		if g, ok := agent.(core.Goer); ok {
			return g.Go, true
		}
	case core.MethodRun:
		if r, ok := agent.(core.Runner); ok {
			return r.Run, true
		}
	case core.MethodProcessQuery:
		if p, ok := agent.(core.QueryProcessor); ok {
			return p.ProcessQuery, true
		}
	}

	return nil, false
}
