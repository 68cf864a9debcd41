package tool

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/biomnibridge/adapter"
	"github.com/hupe1980/biomnibridge/core"
	"github.com/hupe1980/biomnibridge/internal/util"
	"github.com/hupe1980/biomnibridge/locator"
	"github.com/hupe1980/biomnibridge/logging"
)

// BiomniToolName is the unique tool identifier announced to the host.
const BiomniToolName = "biomni_agent"

// Section keys a research-shaped agent result may carry. Rendered in this
// order; references only when citations are enabled.
var sectionKeys = []string{"analysis", "conclusions", "recommendations", "references"}

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// ImportSpecifier locates the external agent ("<module>:<attribute>").
	ImportSpecifier string
	// Method is the capability probed first on the agent.
	Method string
	// PluginDir is an optional search-path entry for shared-object modules.
	PluginDir string
	// MaxExecutionTime is the default per-request execution limit.
	MaxExecutionTime time.Duration
	// MaxOutputChars bounds rendered result length in runes.
	MaxOutputChars int
	// IncludeCitations controls the default for the references section.
	IncludeCitations bool

	// Locator resolves and caches the agent. Defaults to locator.New().
	Locator *locator.Locator
	// Adapter invokes the resolved agent. Defaults to adapter.New().
	Adapter *adapter.Adapter
	// Logger for invocation records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// BiomniTool exposes the external Biomni biomedical research agent as a host
// tool. It validates arguments, resolves the agent lazily through its
// Locator, bounds execution time around the whole agent call, and renders
// results (including research-shaped section maps) as display text.
//
// All failures past argument validation are converted into short formatted
// display strings returned as the tool result, so the host can show them
// as-is instead of handling a transport-level fault.
type BiomniTool struct {
	importSpecifier  string
	method           string
	maxExecutionTime time.Duration
	maxOutputChars   int
	includeCitations bool

	locator *locator.Locator
	adapter *adapter.Adapter
	logger  logging.Logger
}

// New constructs a BiomniTool with optional overrides.
func New(optFns ...func(o *Options)) *BiomniTool {
	opts := Options{
		ImportSpecifier:  "biomni:agent",
		Method:           core.MethodGo,
		MaxExecutionTime: 600 * time.Second,
		MaxOutputChars:   adapter.DefaultMaxOutputChars,
		IncludeCitations: true,
		Logger:           logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Locator == nil {
		opts.Locator = locator.New(func(o *locator.Options) {
			o.Logger = opts.Logger
		})
	}

	if opts.Adapter == nil {
		opts.Adapter = adapter.New(func(o *adapter.Options) {
			o.MaxOutputChars = opts.MaxOutputChars
			o.Logger = opts.Logger
		})
	}

	opts.Locator.AddSearchPath(opts.PluginDir)

	return &BiomniTool{
		importSpecifier:  opts.ImportSpecifier,
		method:           opts.Method,
		maxExecutionTime: opts.MaxExecutionTime,
		maxOutputChars:   opts.MaxOutputChars,
		includeCitations: opts.IncludeCitations,
		locator:          opts.Locator,
		adapter:          opts.Adapter,
		logger:           opts.Logger,
	}
}

// Name returns the unique tool name used in host tool declarations.
func (t *BiomniTool) Name() string { return BiomniToolName }

// Description returns the short natural language description exposed to the host.
func (t *BiomniTool) Description() string {
	return "Execute biomedical research tasks using the locally running Biomni agent"
}

// Parameters returns the JSON schema describing expected arguments.
// include_citations is deliberately untyped in the schema: hosts commonly
// deliver booleans as strings ("true", "1", "yes") and coercion happens in
// Call.
func (t *BiomniTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"research_query": map[string]any{
				"type":        "string",
				"description": "The biomedical research query to execute",
			},
			"max_execution_time": map[string]any{
				"type":        "integer",
				"description": "Maximum execution time in seconds (default 600)",
			},
			"include_citations": map[string]any{
				"description": "Whether to include references in the output (default true)",
			},
		},
		"required": []string{"research_query"},
	}
}

// Call validates the provided args, resolves the agent and invokes it with
// the research query. The returned value is always a display string; only
// malformed argument structures produce a *ToolError.
func (t *BiomniTool) Call(ctx context.Context, args map[string]any) (any, error) {
	if err := util.ValidateParameters(args, t.Parameters()); err != nil {
		t.logger.Warn("tool.call.validation_failed", "tool", t.Name(), "error", err.Error())

		return nil, &ToolError{
			Tool:    t.Name(),
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidation,
			Details: err,
		}
	}

	query, _ := args["research_query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return t.errorText("validation", "please provide a research query"), nil
	}

	maxExecution := toDuration(args["max_execution_time"], t.maxExecutionTime)
	includeCitations := toBool(args["include_citations"], t.includeCitations)

	agent, err := t.locator.Resolve(t.importSpecifier)
	if err != nil {
		return t.errorText("configuration", err.Error()), nil
	}

	invCtx := core.NewInvocationContext(ctx, t.locator.Info(), t.logger)

	t.logger.Info("tool.call.start", "tool", t.Name(), "invocation_id", invCtx.InvocationID(),
		"max_execution_time", maxExecution.String())

	res, err := t.invokeBounded(invCtx, agent, query, maxExecution)
	if err != nil {
		switch {
		case isTimeout(err):
			return t.timeoutText(maxExecution), nil
		case adapter.IsConfigurationError(err):
			return t.errorText("configuration", err.Error()), nil
		default:
			return t.errorText("execution", err.Error()), nil
		}
	}

	t.logger.Info("tool.call.success", "tool", t.Name(), "invocation_id", invCtx.InvocationID(),
		"duration_ms", res.Duration.Milliseconds())

	return t.renderResult(query, res, includeCitations), nil
}

// invokeBounded runs the adapter invocation under the execution-time limit.
// The limit wraps the whole request; the adapter itself carries no timeouts.
// An agent that ignores context cancellation is abandoned once the limit
// elapses, matching the opaque-side-effects stance: the call is not retried.
func (t *BiomniTool) invokeBounded(invCtx *core.InvocationContext, agent any, query string, limit time.Duration) (*core.Result, error) {
	ctx, cancel := context.WithTimeout(invCtx.Context(), limit)
	defer cancel()

	boundedCtx := invCtx.WithContext(ctx)

	type outcome struct {
		res *core.Result
		err error
	}

	ch := make(chan outcome, 1)

	go func() {
		res, err := t.adapter.Invoke(boundedCtx, agent, core.Request{
			Query:          query,
			Method:         t.method,
			MaxOutputChars: t.maxOutputChars,
		})
		ch <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		return out.res, out.err
	}
}

// renderResult builds the final display text: a short header followed by the
// result body. Research-shaped maps get section rendering; everything else
// uses the adapter's generic formatting.
func (t *BiomniTool) renderResult(query string, res *core.Result, includeCitations bool) string {
	body := res.Text
	if m, ok := res.Raw.(map[string]any); ok {
		if sections := renderSections(m, includeCitations); sections != "" {
			body, _ = adapter.FormatResult(sections, t.maxOutputChars)
		}
	}

	header := fmt.Sprintf("**Biomni Analysis Complete**\n\n**Query**: %s\n\n**Execution Time**: %.1f seconds\n\n**Results**:\n\n",
		query, res.Duration.Seconds())

	return header + body
}

// renderSections renders the conventional research sections of a map result.
// Empty string means the map carries no known sections and the generic
// formatting applies.
func renderSections(m map[string]any, includeCitations bool) string {
	var b strings.Builder

	titles := map[string]string{
		"analysis":        "Analysis",
		"conclusions":     "Conclusions",
		"recommendations": "Recommendations",
		"references":      "References",
	}

	for _, key := range sectionKeys {
		if key == "references" && !includeCitations {
			continue
		}

		v, ok := m[key]
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "**%s**:\n%s\n\n", titles[key], sectionText(v))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func sectionText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

func (t *BiomniTool) errorText(category, msg string) string {
	return fmt.Sprintf("**Biomni Agent Error**\n\n**Category**: %s\n\n**Error**: %s", category, msg)
}

func (t *BiomniTool) timeoutText(limit time.Duration) string {
	return fmt.Sprintf("**Timeout**: the analysis exceeded the maximum execution time of %.0f seconds. "+
		"Try breaking down your query into smaller parts or increasing the timeout limit.", limit.Seconds())
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// toBool coerces host-delivered parameter values (bool, number, or string
// forms like "true", "1", "yes", "on") into a bool, falling back to def.
func toBool(v any, def bool) bool {
	switch t := v.(type) {
	case nil:
		return def
	case bool:
		return t
	case int:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "on":
			return true
		case "false", "0", "no", "n", "off":
			return false
		}
	}

	return def
}

// toDuration coerces a seconds value (number or numeric string) into a
// duration, falling back to def for absent or unusable values.
func toDuration(v any, def time.Duration) time.Duration {
	switch t := v.(type) {
	case nil:
		return def
	case int:
		if t > 0 {
			return time.Duration(t) * time.Second
		}
	case float64:
		if t > 0 {
			return time.Duration(t) * time.Second
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}

	return def
}
