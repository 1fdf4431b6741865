package tool

import "context"

// Handler is the uniform invocable shape every tool is stored behind.
// Arguments arrive as a name-to-value map matching the tool's schema; the
// result is any JSON-compatible value, most commonly a string.
//
// Contract:
// - Context: handlers must honor cancellation/deadlines on long operations.
// - Errors: a returned error is surfaced to the interpreter as a diagnostic;
//   handlers should pre-empt common failure modes (timeouts, missing
//   credentials) and return a readable message instead of raising where a
//   clean failure string is preferable to an opaque one.
// - Ownership: args are read-only; the result is caller-owned.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Definition describes one registered tool.
type Definition struct {
	// Name is the unique identifier and the symbol the tool is callable as
	// inside executed code.
	Name string

	// Handler is the function invoked when executed code calls the tool.
	Handler Handler

	// Description is human-readable text used for documentation generation.
	Description string

	// Schema describes the tool's parameters.
	Schema Schema
}
