package starlarkengine_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sandbridge/sandbridge/code"
	"github.com/sandbridge/sandbridge/code/starlarkengine"
	"github.com/sandbridge/sandbridge/tool"
)

var _ code.Engine = (*starlarkengine.Engine)(nil)

func run(t *testing.T, reg *tool.Registry, maxCalls int, src string) (*code.Sandbox, error) {
	t.Helper()
	sb := code.NewSandbox(reg, maxCalls)
	eng := starlarkengine.New()
	err := eng.Execute(context.Background(), code.ExecuteParams{Code: src}, sb)
	return sb, err
}

func TestExecuteCapturesPrint(t *testing.T) {
	sb, err := run(t, tool.NewRegistry(), 0, `print("hi")`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := sb.Stdout(); got != "hi\n" {
		t.Errorf("Stdout() = %q, want %q", got, "hi\n")
	}
}

func TestExecuteNoOutput(t *testing.T) {
	sb, err := run(t, tool.NewRegistry(), 0, `x = 1`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := sb.Stdout(); got != "" {
		t.Errorf("Stdout() = %q, want empty", got)
	}
}

func TestExecuteRuntimeError(t *testing.T) {
	_, err := run(t, tool.NewRegistry(), 0, `fail("boom")`)
	if err == nil {
		t.Fatal("Execute() error = nil, want runtime error")
	}
	var ce *code.CodeError
	if !errors.As(err, &ce) {
		t.Fatalf("Execute() error = %T, want *code.CodeError", err)
	}
	if !strings.Contains(ce.Message, "boom") {
		t.Errorf("CodeError.Message = %q, want it to contain %q", ce.Message, "boom")
	}
	if !errors.Is(err, code.ErrCodeExecution) {
		t.Error("error should match ErrCodeExecution")
	}
}

func TestExecuteSyntaxError(t *testing.T) {
	_, err := run(t, tool.NewRegistry(), 0, "def broken(:\n")
	if err == nil {
		t.Fatal("Execute() error = nil, want syntax error")
	}
	var ce *code.CodeError
	if !errors.As(err, &ce) {
		t.Fatalf("Execute() error = %T, want *code.CodeError", err)
	}
	if ce.Line == 0 {
		t.Error("CodeError.Line = 0, want source position")
	}
}

func TestExecuteToolCall(t *testing.T) {
	type greetArgs struct {
		Name    string `json:"name"`
		Excited bool   `json:"excited" default:"false"`
	}
	reg := tool.NewRegistry()
	reg.RegisterFunc("greet", func(ctx context.Context, args map[string]any) (any, error) {
		greeting := fmt.Sprintf("hello, %v", args["name"])
		if excited, _ := args["excited"].(bool); excited {
			greeting += "!"
		}
		return greeting, nil
	}, "Greets someone.", greetArgs{})

	sb, err := run(t, reg, 0, `
print(greet(name="ada"))
print(greet("lin", True))
`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "hello, ada\nhello, lin!\n"
	if got := sb.Stdout(); got != want {
		t.Errorf("Stdout() = %q, want %q", got, want)
	}

	calls := sb.ToolCalls()
	if len(calls) != 2 {
		t.Fatalf("ToolCalls() len = %d, want 2", len(calls))
	}
	if calls[0].Tool != "greet" || calls[0].Error != "" {
		t.Errorf("unexpected first call record: %+v", calls[0])
	}
	if got := calls[0].Args["name"]; got != "ada" {
		t.Errorf("first call name = %v, want ada", got)
	}
}

func TestExecuteToolDefaultApplied(t *testing.T) {
	type echoArgs struct {
		Text  string `json:"text"`
		Times int    `json:"times" default:"2"`
	}
	reg := tool.NewRegistry()
	reg.RegisterFunc("echo", func(ctx context.Context, args map[string]any) (any, error) {
		times, ok := args["times"].(int)
		if !ok {
			if n, isInt64 := args["times"].(int64); isInt64 {
				times = int(n)
			}
		}
		return strings.Repeat(fmt.Sprint(args["text"]), times), nil
	}, "Repeats text.", echoArgs{})

	sb, err := run(t, reg, 0, `print(echo(text="ab"))`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := sb.Stdout(); got != "abab\n" {
		t.Errorf("Stdout() = %q, want %q", got, "abab\n")
	}
}

func TestExecuteToolError(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register("explode", func(ctx context.Context, args map[string]any) (any, error) {
		return nil, errors.New("kaboom")
	}, "Always fails.")

	_, err := run(t, reg, 0, `explode()`)
	if err == nil {
		t.Fatal("Execute() error = nil, want tool error")
	}
	if !strings.Contains(err.Error(), "explode") || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("Execute() error = %q, want tool name and cause", err)
	}
}

func TestExecuteToolCallBudget(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register("ping", func(ctx context.Context, args map[string]any) (any, error) {
		return "pong", nil
	}, "Responds with pong.")

	_, err := run(t, reg, 1, `
ping()
ping()
`)
	if err == nil {
		t.Fatal("Execute() error = nil, want budget error")
	}
	if !strings.Contains(err.Error(), "max tool calls") {
		t.Errorf("Execute() error = %q, want budget message", err)
	}
}

func TestExecuteEprint(t *testing.T) {
	sb, err := run(t, tool.NewRegistry(), 0, `eprint("warning:", "low disk")`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := sb.Stderr(); got != "warning: low disk\n" {
		t.Errorf("Stderr() = %q, want %q", got, "warning: low disk\n")
	}
	if got := sb.Stdout(); got != "" {
		t.Errorf("Stdout() = %q, want empty", got)
	}
}

func TestExecuteNamespaceIsolation(t *testing.T) {
	eng := starlarkengine.New()
	reg := tool.NewRegistry()

	sb1 := code.NewSandbox(reg, 0)
	if err := eng.Execute(context.Background(), code.ExecuteParams{Code: `leaked = 42`}, sb1); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	sb2 := code.NewSandbox(reg, 0)
	err := eng.Execute(context.Background(), code.ExecuteParams{Code: `print(leaked)`}, sb2)
	if err == nil {
		t.Fatal("second Execute() error = nil, want undefined variable error")
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sb := code.NewSandbox(tool.NewRegistry(), 0)
	eng := starlarkengine.New()
	err := eng.Execute(ctx, code.ExecuteParams{Code: "while True:\n    pass\n"}, sb)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Execute() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRunIdempotent(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register("stamp", func(ctx context.Context, args map[string]any) (any, error) {
		return "fixed", nil
	}, "Returns a fixed value.")

	ex, err := code.NewExecutor(code.Config{Registry: reg, Engine: starlarkengine.New()})
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	src := `
x = stamp()
print(x, len(x))
`
	first := ex.Run(context.Background(), src)
	second := ex.Run(context.Background(), src)
	if first != second {
		t.Errorf("Run() not idempotent: %q then %q", first, second)
	}
	if first != "fixed 5\n" {
		t.Errorf("Run() = %q, want %q", first, "fixed 5\n")
	}
}

func TestExecuteStructuredResult(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Register("stats", func(ctx context.Context, args map[string]any) (any, error) {
		return map[string]any{"count": 3, "items": []any{"a", "b"}}, nil
	}, "Returns structured data.")

	sb, err := run(t, reg, 0, `
r = stats()
print(r["count"], len(r["items"]))
`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := sb.Stdout(); got != "3 2\n" {
		t.Errorf("Stdout() = %q, want %q", got, "3 2\n")
	}
}
