//go:build linux || darwin

package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
)

// lookupPlugin probes the search path for a "<module>.so" shared object and
// resolves the attribute as an exported symbol. A plugin that exists but
// fails to load counts as module-not-found with the loader error attached:
// from the caller's view the module is not importable either way.
//
// Loaded plugins may also register modules into the Default registry from
// their init functions; that path is re-checked after a successful open so
// both symbol-export and self-registration styles work. Caller holds l.mu.
func (l *Locator) lookupPlugin(module, attribute string) (value any, moduleFound, attributeFound bool, err error) {
	for _, dir := range l.searchPaths {
		file := filepath.Join(dir, module+".so")
		if _, statErr := os.Stat(file); statErr != nil {
			continue
		}

		p, openErr := plugin.Open(file)
		if openErr != nil {
			return nil, false, false, fmt.Errorf("%w: %q (plugin %s: %v)", ErrModuleNotFound, module, file, openErr)
		}

		l.logger.Info("locator.plugin.loaded", "module", module, "file", file)

		// Self-registration from plugin init wins over symbol export.
		if v, mf, af := l.registry.Lookup(module, attribute); mf {
			return v, mf, af, nil
		}

		sym, lookupErr := p.Lookup(attribute)
		if lookupErr != nil {
			return nil, true, false, nil
		}

		return derefSymbol(sym), true, true, nil
	}

	return nil, false, false, nil
}

// derefSymbol unwraps the pointer indirection plugin.Lookup applies to
// exported variables.
func derefSymbol(sym plugin.Symbol) any {
	switch s := sym.(type) {
	case *any:
		return *s
	case *Constructor:
		return *s
	default:
		return s
	}
}
