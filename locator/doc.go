// Package locator resolves configured import specifiers into live agent
// objects.
//
// A specifier has the form "<module>:<attribute>", for example
// "biomni.agent:agent" or "biomni:BiomniAgent". Modules are looked up in a
// Registry of in-process agent modules first; when a plugin search path is
// configured, unknown modules are additionally probed as shared-object files
// ("<module>.so") beneath that path.
//
// A resolved attribute that is a Constructor is instantiated with no
// arguments; any other value is used directly as the agent instance. The
// Locator caches the first successful resolution for its lifetime (at most
// one agent per Locator) and returns the identical instance on subsequent
// calls until Reset is invoked. Failed resolutions cache nothing, so every
// later call re-attempts with the current configuration.
package locator
