// Package core provides the foundational domain types used by BiomniBridge.
// It defines the core abstractions for:
//
//   - Agent capabilities (the closed set of calling conventions an external
//     agent may expose: Goer, Runner, QueryProcessor, or a direct Func)
//   - Invocation requests and results exchanged with the host platform
//   - InvocationContext (scoped execution context for a single request)
//
// The package intentionally keeps implementation concerns (agent resolution,
// capability probing, formatting) out of scope, exposing small interfaces so
// any externally supplied agent object can be bridged without modification.
package core
