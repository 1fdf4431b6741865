package code

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sandbridge/sandbridge/tool"
)

// Sandbox is the ephemeral environment for a single code execution: a
// snapshot of the registry's definitions plus output buffers and a
// tool-call trace scoped to this one call.
//
// Buffers are guarded by a mutex so tools running on worker goroutines may
// write diagnostics concurrently without corrupting capture; separate
// executions never share a sandbox, so calls cannot interleave with each
// other.
type Sandbox struct {
	defs []tool.Definition

	mu           sync.Mutex
	stdout       strings.Builder
	stderr       strings.Builder
	toolCalls    []ToolCallRecord
	maxToolCalls int
	callCount    int
}

// NewSandbox snapshots the registry into a fresh sandbox. A maxToolCalls of
// zero means unlimited.
func NewSandbox(reg *tool.Registry, maxToolCalls int) *Sandbox {
	return &Sandbox{
		defs:         reg.Definitions(),
		maxToolCalls: maxToolCalls,
	}
}

// Definitions returns the tool definitions captured at sandbox creation,
// in registration order.
func (s *Sandbox) Definitions() []tool.Definition {
	return s.defs
}

// Print appends text to the captured stdout stream.
func (s *Sandbox) Print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stdout.WriteString(text)
}

// PrintErr appends text to the captured stderr stream.
func (s *Sandbox) PrintErr(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stderr.WriteString(text)
}

// Stdout returns the captured stdout output.
func (s *Sandbox) Stdout() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdout.String()
}

// Stderr returns the captured stderr output.
func (s *Sandbox) Stderr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stderr.String()
}

// BeginToolCall consumes one unit of the tool-call budget, returning
// ErrLimitExceeded once spent.
func (s *Sandbox) BeginToolCall() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxToolCalls > 0 && s.callCount >= s.maxToolCalls {
		return fmt.Errorf("%w: max tool calls (%d) exceeded", ErrLimitExceeded, s.maxToolCalls)
	}
	s.callCount++
	return nil
}

// Record appends a tool invocation to the trace.
func (s *Sandbox) Record(rec ToolCallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolCalls = append(s.toolCalls, rec)
}

// ToolCalls returns a copy of all recorded tool calls.
func (s *Sandbox) ToolCalls() []ToolCallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ToolCallRecord(nil), s.toolCalls...)
}
