package code

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandbridge/sandbridge/tool"
)

// RanNoOutput is returned by Run when the snippet executed cleanly but
// printed nothing.
const RanNoOutput = "Code ran successfully (no output)"

// Executor runs code snippets against a configured registry and engine.
type Executor struct {
	cfg Config
}

// NewExecutor creates an Executor with the given configuration.
// Returns ErrConfiguration if any required field is missing.
func NewExecutor(cfg Config) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Executor{cfg: cfg}, nil
}

// Execute runs one snippet and returns the structured result. Execution
// failures are returned as errors (CodeError for failures inside the
// snippet, ErrLimitExceeded for timeouts and budget exhaustion); the
// partial result is still populated for observability.
func (e *Executor) Execute(ctx context.Context, params ExecuteParams) (ExecuteResult, error) {
	if params.Timeout == 0 {
		params.Timeout = e.cfg.DefaultTimeout
	}
	maxCalls := params.MaxToolCalls
	if e.cfg.MaxToolCalls > 0 && (maxCalls == 0 || maxCalls > e.cfg.MaxToolCalls) {
		maxCalls = e.cfg.MaxToolCalls
	}

	sb := NewSandbox(e.cfg.Registry, maxCalls)

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := e.cfg.Engine.Execute(ctx, params, sb)
	duration := time.Since(start).Milliseconds()

	result := ExecuteResult{
		Stdout:     sb.Stdout(),
		Stderr:     sb.Stderr(),
		ToolCalls:  sb.ToolCalls(),
		DurationMs: duration,
	}

	if e.cfg.Logger != nil {
		e.cfg.Logger.Logf("executed %d tool calls in %dms", len(result.ToolCalls), duration)
	}

	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return result, fmt.Errorf("%w: timeout after %v", ErrLimitExceeded, params.Timeout)
	}
	return result, err
}

// Run executes a snippet and downgrades every outcome to a single string:
//
//   - execution failed: "Error running code: <message>" (captured stdout
//     is discarded)
//   - stderr captured: "Output:\n<stdout>\n\nErrors:\n<stderr>"
//   - stdout captured: the output verbatim
//   - otherwise: the RanNoOutput sentinel
//
// Run never returns an error or panics; it is the call boundary handed to
// the model.
func (e *Executor) Run(ctx context.Context, src string) string {
	result, err := e.Execute(ctx, ExecuteParams{Code: src})
	if err != nil {
		return "Error running code: " + err.Error()
	}
	if result.Stderr != "" {
		return fmt.Sprintf("Output:\n%s\n\nErrors:\n%s", result.Stdout, result.Stderr)
	}
	if result.Stdout != "" {
		return result.Stdout
	}
	return RanNoOutput
}

// Tool wraps Run as a registrable tool handler taking a single "code"
// argument, the sole call boundary the agent framework exposes to the
// model.
func (e *Executor) Tool() tool.Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		src, _ := args["code"].(string)
		return e.Run(ctx, src), nil
	}
}

// RunCodeArgs is the inference prototype for the Tool handler's schema.
type RunCodeArgs struct {
	Code string `json:"code"`
}
