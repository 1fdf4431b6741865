package starlarkengine

import (
	"fmt"
	"strings"
	"time"

	"go.starlark.net/starlark"

	"github.com/sandbridge/sandbridge/bridge"
	"github.com/sandbridge/sandbridge/code"
	"github.com/sandbridge/sandbridge/tool"
)

// toolBuiltin wraps one registered tool as a Starlark builtin. Arguments
// are bound positionally and by keyword against the tool's schema, the
// handler runs through the sync bridge with the execution's context, and
// the invocation lands in the sandbox trace.
func toolBuiltin(def tool.Definition, sb *code.Sandbox) *starlark.Builtin {
	call := bridge.SyncCtx(bridge.Func(def.Handler))

	return starlark.NewBuiltin(def.Name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		argMap, err := bindArgs(def, args, kwargs)
		if err != nil {
			return nil, err
		}
		if err := sb.BeginToolCall(); err != nil {
			return nil, err
		}

		start := time.Now()
		result, err := call(threadContext(thread), argMap)
		rec := code.ToolCallRecord{
			Tool:       def.Name,
			Args:       argMap,
			DurationMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			rec.Error = err.Error()
		}
		sb.Record(rec)

		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Name, err)
		}
		return toStarlark(result)
	})
}

// bindArgs maps Starlark call arguments onto the handler's args map.
// Schema order drives positional binding; unset optionals take their
// schema default.
func bindArgs(def tool.Definition, args starlark.Tuple, kwargs []starlark.Tuple) (map[string]any, error) {
	schema := def.Schema
	if len(schema.Order) == 0 {
		// Schemaless tool: keyword arguments pass through untyped.
		if len(args) > 0 {
			return nil, fmt.Errorf("%s: unexpected positional arguments", def.Name)
		}
		out := make(map[string]any, len(kwargs))
		for _, kv := range kwargs {
			name, _ := starlark.AsString(kv[0])
			out[name] = fromStarlark(kv[1])
		}
		return out, nil
	}

	values := make([]starlark.Value, len(schema.Order))
	pairs := make([]any, 0, len(schema.Order)*2)
	for i, name := range schema.Order {
		spec := name
		if schema.Properties[name].HasDefault {
			spec = name + "?"
		}
		pairs = append(pairs, spec, &values[i])
	}
	if err := starlark.UnpackArgs(def.Name, args, kwargs, pairs...); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(schema.Order))
	for i, name := range schema.Order {
		if values[i] == nil {
			if prop := schema.Properties[name]; prop.HasDefault && prop.Default != nil {
				out[name] = prop.Default
			}
			continue
		}
		out[name] = fromStarlark(values[i])
	}
	return out, nil
}

// eprintBuiltin writes to the sandbox's captured stderr stream. Starlark
// has no ambient stderr, so scripts get an explicit channel for warnings.
func eprintBuiltin(sb *code.Sandbox) *starlark.Builtin {
	return starlark.NewBuiltin("eprint", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("eprint: unexpected keyword arguments")
		}
		parts := make([]string, len(args))
		for i, v := range args {
			if s, ok := starlark.AsString(v); ok {
				parts[i] = s
			} else {
				parts[i] = v.String()
			}
		}
		sb.PrintErr(strings.Join(parts, " ") + "\n")
		return starlark.None, nil
	})
}
