// Package code provides the sandboxed execution layer for model-authored
// code snippets.
//
// # Architecture
//
// The package defines three pieces:
//
//   - [Sandbox]: the per-call execution environment: a snapshot of the
//     tool registry plus captured stdout/stderr buffers and a tool-call
//     trace. A fresh sandbox is built for every execution, so namespace
//     mutations and output never leak across calls.
//
//   - [Engine]: the pluggable interpreter that parses and runs a snippet
//     inside a Sandbox. The Starlark implementation lives in the
//     starlarkengine subpackage.
//
//   - [Executor]: the entry point that applies configuration defaults,
//     enforces limits, runs the engine, and formats results.
//
// # Result contract
//
// [Executor.Run] is the surface handed to the agent runtime: it takes a
// code string and always returns a string, never an error. Execution
// failures of every kind, from syntax errors to tool errors, converge
// there and are downgraded to an "Error running code: ..."
// diagnostic, because the consumer is a language model that can only act
// on text. Library consumers that need structured failures use
// [Executor.Execute] and match sentinel errors with errors.Is.
//
// # Execution limits
//
// A per-call timeout is applied via context deadline and surfaces as
// [ErrLimitExceeded]; a tool-call budget is enforced by the Sandbox and
// surfaces the same way.
package code
