package code

import "time"

// ExecuteParams specifies one code execution.
type ExecuteParams struct {
	// Code is the source to execute.
	Code string `json:"code"`

	// Timeout is the maximum duration for this execution. If zero, the
	// executor's default timeout applies.
	Timeout time.Duration `json:"timeout,omitempty"`

	// MaxToolCalls limits tool invocations for this execution. If zero,
	// the executor's configured limit applies (or unlimited if none).
	MaxToolCalls int `json:"maxToolCalls,omitempty"`
}

// ToolCallRecord captures one tool invocation made by executed code, for
// observability and debugging.
type ToolCallRecord struct {
	// Tool is the registered name of the tool that was called.
	Tool string `json:"tool"`

	// Args contains the arguments the snippet passed.
	Args map[string]any `json:"args,omitempty"`

	// Error holds the tool's error message if the call failed.
	Error string `json:"error,omitempty"`

	// DurationMs is the call time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// ExecuteResult is the structured outcome of one execution.
type ExecuteResult struct {
	// Stdout is everything the snippet printed.
	Stdout string `json:"stdout,omitempty"`

	// Stderr is everything the snippet wrote to the error stream.
	Stderr string `json:"stderr,omitempty"`

	// ToolCalls records every tool invocation in call order.
	ToolCalls []ToolCallRecord `json:"toolCalls,omitempty"`

	// DurationMs is the total execution time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}
