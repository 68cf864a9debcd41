// Package adapter translates host queries into calls on a resolved agent
// object and formats the responses.
//
// Method selection is a capability probe over the closed set defined in
// package core, first match wins:
//
//  1. the configured method override, if the agent exposes it
//  2. Go
//  3. Run
//  4. ProcessQuery
//  5. the agent value being directly callable (core.Func)
//
// No match is a configuration error (ErrNoUsableMethod) and is never retried.
// Errors raised by the agent itself are wrapped as *ExecutionError preserving
// the original message; the adapter never retries an agent call.
//
// Formatting bounds the output to a fixed rune budget and appends a
// truncation marker when output is cut.
package adapter
