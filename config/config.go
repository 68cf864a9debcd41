// Package config provides bridge configuration management with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (BIOMNI_* runtime overrides)
//  2. Config file (~/.biomnibridge/config.yaml or ./config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// The import specifier, plugin directory and agent method are read from the
// BIOMNI_AGENT_IMPORT, BIOMNI_PLUGIN_DIR and BIOMNI_AGENT_METHOD environment
// variables.
//
// Error handling uses sentinel errors for Go-idiomatic checking with
// errors.Is(); wrap with context using fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/hupe1980/biomnibridge/core"
)

var (
	// ErrMissingAgentImport indicates no import specifier is configured.
	ErrMissingAgentImport = errors.New("missing agent import specifier")

	// ErrInvalidAgentMethod indicates the configured method override is not
	// one of the known capability names.
	ErrInvalidAgentMethod = errors.New("invalid agent method")

	// ErrInvalidMaxOutputChars indicates the output budget is not positive.
	ErrInvalidMaxOutputChars = errors.New("invalid max output chars")

	// ErrInvalidMaxExecutionTime indicates the execution limit is not positive.
	ErrInvalidMaxExecutionTime = errors.New("invalid max execution time")
)

// Default values applied when neither file nor environment provides a key.
const (
	DefaultAgentImport      = "biomni:agent"
	DefaultAgentMethod      = core.MethodGo
	DefaultMaxOutputChars   = 4000
	DefaultMaxExecutionTime = 600 // seconds
)

// Config stores bridge configuration.
type Config struct {
	// AgentImport locates the external agent: "<module>:<attribute>".
	AgentImport string `mapstructure:"agent_import" json:"agent_import"`
	// AgentMethod is the capability probed first ("go", "run", "process_query").
	AgentMethod string `mapstructure:"agent_method" json:"agent_method"`
	// PluginDir is an optional search-path entry for shared-object agent modules.
	PluginDir string `mapstructure:"plugin_dir" json:"plugin_dir"`

	// MaxOutputChars bounds formatted result length in runes.
	MaxOutputChars int `mapstructure:"max_output_chars" json:"max_output_chars"`
	// MaxExecutionTime is the per-request execution limit in seconds,
	// enforced around the whole agent call at the tool boundary.
	MaxExecutionTime int `mapstructure:"max_execution_time" json:"max_execution_time"`
	// IncludeCitations controls whether the references section is rendered.
	IncludeCitations bool `mapstructure:"include_citations" json:"include_citations"`

	// Logging configuration
	LogLevel  string `mapstructure:"log_level" json:"log_level"`   // debug, info, warn, error
	LogFormat string `mapstructure:"log_format" json:"log_format"` // json or text
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".biomnibridge"))
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("BIOMNI")
	v.AutomaticEnv()

	// Configuration file not found is not an error, use default values.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("agent_import", DefaultAgentImport)
	v.SetDefault("agent_method", DefaultAgentMethod)
	v.SetDefault("plugin_dir", "")
	v.SetDefault("max_output_chars", DefaultMaxOutputChars)
	v.SetDefault("max_execution_time", DefaultMaxExecutionTime)
	v.SetDefault("include_citations", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Validate performs fail-fast range and shape checks.
func (c *Config) Validate() error {
	if c.AgentImport == "" {
		return ErrMissingAgentImport
	}

	switch c.AgentMethod {
	case "", core.MethodGo, core.MethodRun, core.MethodProcessQuery:
	default:
		return fmt.Errorf("%w: %q (want one of: %s, %s, %s)", ErrInvalidAgentMethod,
			c.AgentMethod, core.MethodGo, core.MethodRun, core.MethodProcessQuery)
	}

	if c.MaxOutputChars <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxOutputChars, c.MaxOutputChars)
	}

	if c.MaxExecutionTime <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxExecutionTime, c.MaxExecutionTime)
	}

	return nil
}
