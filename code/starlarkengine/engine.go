// Package starlarkengine implements code.Engine using the Starlark
// interpreter.
//
// Starlark is a Python dialect, so model-authored snippets keep Python
// syntax while executing hermetically inside the process. Every registered
// tool becomes a predeclared builtin in the snippet's namespace; print
// output is captured per-thread into the sandbox, so concurrent executions
// never share redirection state.
package starlarkengine

import (
	"context"
	"errors"
	"sync"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/sandbridge/sandbridge/code"
)

const ctxLocalKey = "sandbridge.ctx"

// Allow the constructs agents habitually emit. These are process-wide
// interpreter options, set once.
var resolveOnce sync.Once

func setResolveOptions() {
	resolve.AllowSet = true
	resolve.AllowRecursion = true
	resolve.AllowGlobalReassign = true
}

// Engine executes Starlark snippets. Safe for concurrent use: all per-call
// state lives in the Sandbox and the per-execution Thread.
type Engine struct {
	filename string
}

// New creates a Starlark engine.
func New() *Engine {
	resolveOnce.Do(setResolveOptions)
	return &Engine{filename: "<run>"}
}

// Execute implements code.Engine. Parse errors and eval errors both come
// back as *code.CodeError; context expiry cancels the interpreter and
// returns ctx.Err().
func (e *Engine) Execute(ctx context.Context, params code.ExecuteParams, sb *code.Sandbox) error {
	thread := &starlark.Thread{
		Name: "sandbox",
		Print: func(_ *starlark.Thread, msg string) {
			sb.Print(msg + "\n")
		},
	}
	thread.SetLocal(ctxLocalKey, ctx)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	// A fresh predeclared dict per call: namespace mutations never leak
	// across executions.
	defs := sb.Definitions()
	predeclared := make(starlark.StringDict, len(defs)+1)
	for _, def := range defs {
		predeclared[def.Name] = toolBuiltin(def, sb)
	}
	predeclared["eprint"] = eprintBuiltin(sb)

	_, err := starlark.ExecFile(thread, e.filename, params.Code, predeclared)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return asCodeError(err)
	}
	return nil
}

func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(ctxLocalKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// asCodeError maps interpreter failures onto the package error taxonomy,
// carrying source positions when the interpreter provides them.
func asCodeError(err error) error {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		ce := &code.CodeError{Message: evalErr.Msg, Err: err}
		if n := len(evalErr.CallStack); n > 0 {
			pos := evalErr.CallStack[n-1].Pos
			ce.Line, ce.Column = int(pos.Line), int(pos.Col)
		}
		return ce
	}
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		return &code.CodeError{
			Message: syntaxErr.Msg,
			Line:    int(syntaxErr.Pos.Line),
			Column:  int(syntaxErr.Pos.Col),
			Err:     err,
		}
	}
	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		first := resolveErrs[0]
		return &code.CodeError{
			Message: first.Msg,
			Line:    int(first.Pos.Line),
			Column:  int(first.Pos.Col),
			Err:     err,
		}
	}
	return &code.CodeError{Message: err.Error(), Err: err}
}
