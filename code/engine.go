package code

import "context"

// Engine is the pluggable interpreter that runs code snippets inside a
// Sandbox.
//
// The Engine should:
//   - Build its execution namespace from the sandbox's tool definitions
//   - Route printed output into the sandbox's captured streams
//   - Report parse and runtime failures as *CodeError with line/column
//     info when available
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; all
//   per-call state lives in the Sandbox.
// - Context: must honor cancellation/deadlines and return ctx.Err() when
//   canceled.
// - Errors: execution failures should return CodeError where possible;
//   callers use errors.Is.
type Engine interface {
	// Execute runs params.Code inside sb.
	Execute(ctx context.Context, params ExecuteParams, sb *Sandbox) error
}
