//go:build !linux && !darwin

package locator

// Shared-object plugins are unsupported on this platform; only registered
// modules resolve.
func (l *Locator) lookupPlugin(string, string) (value any, moduleFound, attributeFound bool, err error) {
	return nil, false, false, nil
}
