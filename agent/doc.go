// Package agent groups the built-in reference agents that ship with the
// bridge. Each backend lives in its own subpackage (openai, anthropic,
// ollama) and implements exactly one capability from package core, so the
// probe fallback chain is exercised end to end. Production deployments
// normally register an externally supplied Biomni agent instead; the
// reference agents exist for local development and smoke testing of the
// plugin wiring.
package agent
