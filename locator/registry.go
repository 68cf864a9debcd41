package locator

import "sync"

// Module is a named set of attributes an agent module exports. Attribute
// values are either ready agent instances or Constructor values.
type Module map[string]any

// Constructor builds an agent instance with no arguments. Registering a
// Constructor (rather than an instance) defers agent setup until the first
// resolution.
type Constructor func() (any, error)

// Registry maps module paths to agent modules. All methods are safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// RegisterModule registers (or replaces) a module under the given path.
func (r *Registry) RegisterModule(path string, m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make(Module, len(m))
	for k, v := range m {
		cp[k] = v
	}

	r.modules[path] = cp
}

// Register adds a single attribute to a module, creating the module if it
// does not exist yet.
func (r *Registry) Register(path, attribute string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[path]
	if !ok {
		m = Module{}
		r.modules[path] = m
	}

	m[attribute] = value
}

// Lookup returns the attribute value registered under path and attribute.
// The second return distinguishes a missing module from a missing attribute.
func (r *Registry) Lookup(path, attribute string) (value any, moduleFound, attributeFound bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[path]
	if !ok {
		return nil, false, false
	}

	v, ok := m[attribute]

	return v, true, ok
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Agent packages typically
// register themselves here from init or main before the first resolution.
func Default() *Registry { return defaultRegistry }

// RegisterModule registers a module in the default registry.
func RegisterModule(path string, m Module) { defaultRegistry.RegisterModule(path, m) }

// Register adds an attribute to a module in the default registry.
func Register(path, attribute string, value any) { defaultRegistry.Register(path, attribute, value) }
