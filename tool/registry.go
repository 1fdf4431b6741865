package tool

import (
	"fmt"
	"strings"
	"sync"
)

// Registry is the central mapping of tool names to definitions.
//
// Contract:
// - Concurrency: safe for concurrent use; the expected pattern is
//   write-at-startup, read-mostly thereafter.
// - Overwrite: registering an existing name replaces the prior definition
//   without error, keeping its original position in registration order.
// - Nil/zero: lookups on missing names report absence, never panic.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]Definition
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register stores a tool with an empty parameter schema. Use RegisterFunc
// to infer a schema from an args prototype, or RegisterWithSchema to supply
// one explicitly.
func (r *Registry) Register(name string, h Handler, description string) {
	r.RegisterWithSchema(name, h, description, EmptySchema())
}

// RegisterFunc stores a tool whose schema is inferred from the prototype
// struct (see InferSchema).
func (r *Registry) RegisterFunc(name string, h Handler, description string, prototype any) {
	r.RegisterWithSchema(name, h, description, InferSchema(prototype))
}

// RegisterWithSchema stores a tool with an explicit parameter schema.
func (r *Registry) RegisterWithSchema(name string, h Handler, description string, schema Schema) {
	if schema.Type == "" {
		schema.Type = "object"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.defs[name] = Definition{Name: name, Handler: h, Description: description, Schema: schema}
}

// Namespace returns every registered handler keyed by name. The result is a
// snapshot: later registrations are not reflected in it.
func (r *Registry) Namespace() map[string]Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns := make(map[string]Handler, len(r.defs))
	for name, def := range r.defs {
		ns[name] = def.Handler
	}
	return ns
}

// Definitions returns a snapshot of every definition in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// List returns the registered tool names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Get retrieves a tool definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Instructions generates markdown documentation of all registered tools for
// inclusion in agent prompts. An empty registry yields an empty string so
// that agents with zero tools receive no spurious section.
func (r *Registry) Instructions() string {
	defs := r.Definitions()
	if len(defs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Available Tools\n\n")
	b.WriteString("These functions are available in the interpreter.\n")
	b.WriteString("Call them directly in your code (no imports needed):\n\n")

	for _, def := range defs {
		fmt.Fprintf(&b, "### `%s`\n", def.Name)
		b.WriteString(def.Description)
		b.WriteString("\n\n")

		if len(def.Schema.Order) == 0 {
			continue
		}
		b.WriteString("**Parameters:**\n")
		for _, param := range def.Schema.Order {
			prop := def.Schema.Properties[param]
			switch {
			case !prop.HasDefault:
				fmt.Fprintf(&b, "- `%s` (%s, required)\n", param, prop.Type)
			case prop.Default != nil:
				fmt.Fprintf(&b, "- `%s` (%s, default=%v)\n", param, prop.Type, prop.Default)
			default:
				fmt.Fprintf(&b, "- `%s` (%s, optional)\n", param, prop.Type)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
