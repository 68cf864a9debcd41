package locator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/biomnibridge/core"
	"github.com/hupe1980/biomnibridge/logging"
)

var (
	// ErrInvalidSpecifier is returned when an import specifier is missing the
	// "<module>:<attribute>" separator or has an empty module or attribute
	// part. No lookup is attempted in that case.
	ErrInvalidSpecifier = errors.New("invalid import specifier")

	// ErrModuleNotFound is returned when the module part resolves neither in
	// the registry nor as a shared-object plugin on the search path.
	ErrModuleNotFound = errors.New("agent module not found")

	// ErrAttributeNotFound is returned when the module exists but does not
	// export the requested attribute.
	ErrAttributeNotFound = errors.New("agent attribute not found")
)

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// Registry to resolve modules against. Defaults to the process-wide
	// Default() registry.
	Registry *Registry
	// SearchPath is an optional directory probed for "<module>.so" plugin
	// files when a module is not registered.
	SearchPath string
	// Logger for resolution records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Locator resolves an import specifier into a live agent object and caches
// the result. A Locator owns at most one agent reference: it is either absent
// (not yet resolved, or resolution failed) or a single resolved instance.
// Public methods are safe for concurrent use; racing first resolutions settle
// on a single winner.
type Locator struct {
	registry *Registry
	logger   logging.Logger

	mu          sync.Mutex
	searchPaths []string
	agent       any
	resolved    bool
	info        core.AgentInfo
}

// New constructs a Locator with optional overrides.
func New(optFns ...func(o *Options)) *Locator {
	opts := Options{
		Registry: Default(),
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	l := &Locator{registry: opts.Registry, logger: opts.Logger}
	if opts.SearchPath != "" {
		l.searchPaths = []string{opts.SearchPath}
	}

	return l
}

// AddSearchPath prepends dir to the plugin search path. Adding a path that is
// already present is a no-op, so repeated calls with the same configuration
// never duplicate entries.
func (l *Locator) AddSearchPath(dir string) {
	if dir == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.searchPaths {
		if p == dir {
			return
		}
	}

	l.searchPaths = append([]string{dir}, l.searchPaths...)
}

// SearchPaths returns a copy of the current plugin search path.
func (l *Locator) SearchPaths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.searchPaths...)
}

// Resolve returns the agent for the given import specifier. The first
// successful resolution is cached; subsequent calls return the identical
// instance without re-resolving, regardless of the specifier, until Reset.
func (l *Locator) Resolve(specifier string) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resolved {
		l.logger.Debug("locator.resolve.cached", "specifier", specifier)
		return l.agent, nil
	}

	agent, info, err := l.resolve(specifier)
	if err != nil {
		l.logger.Error("locator.resolve.failed", "specifier", specifier, "error", err.Error())
		return nil, err
	}

	l.agent = agent
	l.resolved = true
	l.info = info

	l.logger.Info("locator.resolve.success", "module", info.Module, "attribute", info.Attribute)

	return agent, nil
}

// Info returns identifying details of the cached agent. Zero value until a
// resolution succeeded.
func (l *Locator) Info() core.AgentInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.info
}

// Reset discards the cached agent so the next Resolve re-attempts with the
// then-current configuration. Intended for retrying after a resolution failed
// and the configuration was corrected.
func (l *Locator) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.agent = nil
	l.resolved = false
	l.info = core.AgentInfo{}
}

// resolve performs a single uncached resolution. Caller holds l.mu.
func (l *Locator) resolve(specifier string) (any, core.AgentInfo, error) {
	module, attribute, ok := strings.Cut(specifier, ":")
	if !ok || module == "" || attribute == "" {
		return nil, core.AgentInfo{}, fmt.Errorf("%w: %q (want \"<module>:<attribute>\")", ErrInvalidSpecifier, specifier)
	}

	info := core.AgentInfo{Module: module, Attribute: attribute}

	value, moduleFound, attributeFound := l.registry.Lookup(module, attribute)
	if !moduleFound {
		var err error

		value, moduleFound, attributeFound, err = l.lookupPlugin(module, attribute)
		if err != nil {
			return nil, core.AgentInfo{}, err
		}
	}

	if !moduleFound {
		return nil, core.AgentInfo{}, fmt.Errorf("%w: %q (not registered and no plugin on search path)", ErrModuleNotFound, module)
	}

	if !attributeFound {
		return nil, core.AgentInfo{}, fmt.Errorf("%w: %q has no attribute %q", ErrAttributeNotFound, module, attribute)
	}

	agent, err := instantiate(value)
	if err != nil {
		return nil, core.AgentInfo{}, fmt.Errorf("constructing agent %q: %w", specifier, err)
	}

	return agent, info, nil
}

// instantiate calls value if it is a registered constructor form, otherwise
// returns it unchanged as the agent instance.
func instantiate(value any) (any, error) {
	switch v := value.(type) {
	case Constructor:
		return v()
	case func() (any, error):
		return v()
	case func() any:
		return v(), nil
	default:
		return value, nil
	}
}
