package adapter

import (
	"errors"
	"fmt"

	"github.com/hupe1980/biomnibridge/locator"
)

var (
	// ErrNoUsableMethod is returned when the agent exposes none of the known
	// capabilities and is not directly callable. This is a configuration
	// error: retrying without changing agent or configuration cannot succeed.
	ErrNoUsableMethod = errors.New("no usable agent method (expose one of: go, run, process_query, or a callable)")

	// ErrEmptyQuery is returned when the query is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")
)

// ExecutionError wraps an error raised by the agent during invocation. The
// original message is preserved and reachable via Unwrap.
type ExecutionError struct {
	Method string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent execution failed in %q: %v", e.Method, e.Err)
}

// Unwrap returns the underlying agent error.
func (e *ExecutionError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err belongs to the configuration
// category (bad specifier, module or attribute missing, no usable method,
// empty query) as opposed to an agent execution failure. Configuration
// errors must not be retried automatically.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoUsableMethod) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, locator.ErrInvalidSpecifier) ||
		errors.Is(err, locator.ErrModuleNotFound) ||
		errors.Is(err, locator.ErrAttributeNotFound)
}
