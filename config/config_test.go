package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/biomnibridge/core"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAgentImport, cfg.AgentImport)
	assert.Equal(t, DefaultAgentMethod, cfg.AgentMethod)
	assert.Empty(t, cfg.PluginDir)
	assert.Equal(t, DefaultMaxOutputChars, cfg.MaxOutputChars)
	assert.Equal(t, DefaultMaxExecutionTime, cfg.MaxExecutionTime)
	assert.True(t, cfg.IncludeCitations)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BIOMNI_AGENT_IMPORT", "biomni.agent:A1")
	t.Setenv("BIOMNI_AGENT_METHOD", core.MethodRun)
	t.Setenv("BIOMNI_PLUGIN_DIR", "/opt/biomni/plugins")
	t.Setenv("BIOMNI_MAX_OUTPUT_CHARS", "2000")
	t.Setenv("BIOMNI_MAX_EXECUTION_TIME", "120")
	t.Setenv("BIOMNI_INCLUDE_CITATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "biomni.agent:A1", cfg.AgentImport)
	assert.Equal(t, core.MethodRun, cfg.AgentMethod)
	assert.Equal(t, "/opt/biomni/plugins", cfg.PluginDir)
	assert.Equal(t, 2000, cfg.MaxOutputChars)
	assert.Equal(t, 120, cfg.MaxExecutionTime)
	assert.False(t, cfg.IncludeCitations)
}

func TestLoad_InvalidMethod(t *testing.T) {
	t.Setenv("BIOMNI_AGENT_METHOD", "summon")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidAgentMethod)
}

func TestValidate(t *testing.T) {
	valid := Config{
		AgentImport:      DefaultAgentImport,
		AgentMethod:      DefaultAgentMethod,
		MaxOutputChars:   DefaultMaxOutputChars,
		MaxExecutionTime: DefaultMaxExecutionTime,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: nil},
		{name: "empty method allowed", mutate: func(c *Config) { c.AgentMethod = "" }, wantErr: nil},
		{name: "missing import", mutate: func(c *Config) { c.AgentImport = "" }, wantErr: ErrMissingAgentImport},
		{name: "unknown method", mutate: func(c *Config) { c.AgentMethod = "summon" }, wantErr: ErrInvalidAgentMethod},
		{name: "zero output chars", mutate: func(c *Config) { c.MaxOutputChars = 0 }, wantErr: ErrInvalidMaxOutputChars},
		{name: "negative execution time", mutate: func(c *Config) { c.MaxExecutionTime = -1 }, wantErr: ErrInvalidMaxExecutionTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
