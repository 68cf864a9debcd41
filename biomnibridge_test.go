package biomnibridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/biomnibridge/config"
	"github.com/hupe1980/biomnibridge/locator"
	"github.com/hupe1980/biomnibridge/logging"
	"github.com/hupe1980/biomnibridge/tool"
)

type bridgeAgent struct{}

func (bridgeAgent) Go(_ context.Context, q string) (any, error) {
	return map[string]any{"output": "resolved " + q}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AgentImport:      "biomni:agent",
		AgentMethod:      config.DefaultAgentMethod,
		MaxOutputChars:   config.DefaultMaxOutputChars,
		MaxExecutionTime: config.DefaultMaxExecutionTime,
		IncludeCitations: true,
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

func newTestBridge(t *testing.T, reg *locator.Registry) *Bridge {
	t.Helper()

	b, err := New(func(o *Options) {
		o.Config = testConfig()
		o.Registry = reg
		o.Logger = logging.NoOpLogger{}
	})
	require.NoError(t, err)

	return b
}

func TestBridge_Query(t *testing.T) {
	reg := locator.NewRegistry()
	reg.RegisterModule("biomni", locator.Module{"agent": bridgeAgent{}})

	b := newTestBridge(t, reg)

	text, err := b.Query(context.Background(), "tp53 interactions")
	require.NoError(t, err)
	assert.Contains(t, text, "resolved tp53 interactions")
}

func TestBridge_ProviderValidation(t *testing.T) {
	reg := locator.NewRegistry()
	reg.RegisterModule("biomni", locator.Module{"agent": bridgeAgent{}})

	b := newTestBridge(t, reg)
	assert.NoError(t, b.Provider().ValidateCredentials())

	empty := newTestBridge(t, locator.NewRegistry())
	assert.Error(t, empty.Provider().ValidateCredentials())
}

func TestBridge_ToolMetadata(t *testing.T) {
	b := newTestBridge(t, locator.NewRegistry())
	assert.Equal(t, tool.BiomniToolName, b.Tool().Name())
}

func TestBridge_ResetAgent(t *testing.T) {
	reg := locator.NewRegistry()

	constructed := 0
	reg.Register("biomni", "agent", locator.Constructor(func() (any, error) {
		constructed++
		return bridgeAgent{}, nil
	}))

	b := newTestBridge(t, reg)

	_, err := b.Query(context.Background(), "first")
	require.NoError(t, err)

	_, err = b.Query(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, 1, constructed, "agent reference is cached between queries")

	b.ResetAgent()

	_, err = b.Query(context.Background(), "third")
	require.NoError(t, err)
	assert.Equal(t, 2, constructed)
}

func TestBridge_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AgentImport = ""

	_, err := New(func(o *Options) { o.Config = cfg })
	assert.ErrorIs(t, err, config.ErrMissingAgentImport)
}
