package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/biomnibridge/core"
	"github.com/hupe1980/biomnibridge/logging"
)

type goAgent struct{}

func (goAgent) Go(_ context.Context, q string) (any, error) { return "go:" + q, nil }

type runAgent struct{}

func (runAgent) Run(_ context.Context, q string) (any, error) { return "run:" + q, nil }

type procAgent struct{}

func (procAgent) ProcessQuery(_ context.Context, q string) (any, error) { return "proc:" + q, nil }

type multiAgent struct {
	goAgent
	runAgent
}

type failAgent struct{}

func (failAgent) Go(context.Context, string) (any, error) {
	return nil, errors.New("assay pipeline exploded")
}

func newInvCtx() *core.InvocationContext {
	return core.NewInvocationContext(context.Background(), core.AgentInfo{Module: "mod", Attribute: "agent"}, logging.NoOpLogger{})
}

func TestSelect_FallbackOrder(t *testing.T) {
	tests := []struct {
		name   string
		agent  any
		method string
	}{
		{name: "go only", agent: goAgent{}, method: core.MethodGo},
		{name: "run only", agent: runAgent{}, method: core.MethodRun},
		{name: "process_query only", agent: procAgent{}, method: core.MethodProcessQuery},
		{name: "go wins over run", agent: multiAgent{}, method: core.MethodGo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, method, err := Select(tt.agent, "")
			require.NoError(t, err)
			assert.Equal(t, tt.method, method)
			assert.NotNil(t, call)
		})
	}
}

func TestSelect_OverridePrecedence(t *testing.T) {
	// Agent exposes both go and run; the configured override wins.
	call, method, err := Select(multiAgent{}, core.MethodRun)
	require.NoError(t, err)
	assert.Equal(t, core.MethodRun, method)

	out, err := call(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "run:q", out)
}

func TestSelect_OverrideMissingFallsBack(t *testing.T) {
	// Override names a capability the agent lacks; probing continues with
	// the fixed order instead of failing.
	_, method, err := Select(goAgent{}, core.MethodProcessQuery)
	require.NoError(t, err)
	assert.Equal(t, core.MethodGo, method)
}

func TestSelect_DirectCallable(t *testing.T) {
	fn := core.Func(func(_ context.Context, q string) (any, error) { return "fn:" + q, nil })

	call, method, err := Select(fn, "")
	require.NoError(t, err)
	assert.Equal(t, "call", method)

	out, err := call(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "fn:q", out)

	// A plain function value works too.
	plain := func(_ context.Context, q string) (any, error) { return "plain:" + q, nil }
	_, method, err = Select(plain, "")
	require.NoError(t, err)
	assert.Equal(t, "call", method)
}

func TestSelect_NoUsableMethod(t *testing.T) {
	_, _, err := Select(struct{}{}, "")
	assert.ErrorIs(t, err, ErrNoUsableMethod)
	assert.True(t, IsConfigurationError(err))
}

func TestAdapter_InvokeSuccess(t *testing.T) {
	a := New()

	res, err := a.Invoke(newInvCtx(), goAgent{}, core.Request{Query: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "go:hello", res.Text)
	assert.Equal(t, "go:hello", res.Raw)
	assert.Equal(t, core.MethodGo, res.Method)
	assert.False(t, res.Truncated)
}

func TestAdapter_InvokeTrimsQuery(t *testing.T) {
	a := New()

	res, err := a.Invoke(newInvCtx(), goAgent{}, core.Request{Query: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "go:hello", res.Text)
}

func TestAdapter_InvokeEmptyQuery(t *testing.T) {
	a := New()

	_, err := a.Invoke(newInvCtx(), goAgent{}, core.Request{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.True(t, IsConfigurationError(err))
}

func TestAdapter_InvokeExecutionError(t *testing.T) {
	a := New()

	_, err := a.Invoke(newInvCtx(), failAgent{}, core.Request{Query: "hello"})
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, core.MethodGo, execErr.Method)
	assert.Contains(t, err.Error(), "assay pipeline exploded")
	assert.False(t, IsConfigurationError(err))
}

func TestAdapter_InvokeNoUsableMethod(t *testing.T) {
	a := New()

	_, err := a.Invoke(newInvCtx(), struct{}{}, core.Request{Query: "hello"})
	assert.ErrorIs(t, err, ErrNoUsableMethod)
}

func TestAdapter_InvokeRequestBudgetOverride(t *testing.T) {
	a := New(func(o *Options) { o.MaxOutputChars = 1000 })

	res, err := a.Invoke(newInvCtx(), goAgent{}, core.Request{Query: "hello", MaxOutputChars: 4})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, "go:h"+TruncationMarker, res.Text)
}
