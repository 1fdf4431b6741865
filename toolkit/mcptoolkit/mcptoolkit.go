// Package mcptoolkit adapts an MCP client session into a toolkit, so every
// tool a connected MCP server advertises becomes callable from executed
// code like any locally registered tool.
package mcptoolkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sandbridge/sandbridge/tool"
	"github.com/sandbridge/sandbridge/toolkit"
)

// Toolkit exposes the tools of one MCP session.
type Toolkit struct {
	name    string
	session *mcp.ClientSession
}

var _ toolkit.Toolkit = (*Toolkit)(nil)

// New wraps an established MCP client session. The name labels the toolkit
// in synthesized descriptions and load logs.
func New(name string, session *mcp.ClientSession) *Toolkit {
	return &Toolkit{name: name, session: session}
}

// Name implements toolkit.Toolkit.
func (t *Toolkit) Name() string { return t.name }

// Functions lists the session's tools. Each handler forwards its args map
// as the MCP call arguments and flattens the result to text.
func (t *Toolkit) Functions() (map[string]toolkit.Function, error) {
	ctx := context.Background()
	fns := make(map[string]toolkit.Function)
	for remote, err := range t.session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		schema, err := convertSchema(remote.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", remote.Name, err)
		}
		fns[remote.Name] = toolkit.Function{
			Handler:     t.callHandler(remote.Name),
			Description: remote.Description,
			Schema:      schema,
		}
	}
	return fns, nil
}

func (t *Toolkit) callHandler(name string) tool.Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		res, err := t.session.CallTool(ctx, &mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		})
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", name, err)
		}
		text := flattenContent(res.Content)
		if res.IsError {
			return nil, fmt.Errorf("%s failed: %s", name, text)
		}
		return text, nil
	}
}

// convertSchema normalizes the session's schema payload, which the SDK may
// deliver as raw JSON or an already-decoded map.
func convertSchema(raw any) (*tool.Schema, error) {
	if raw == nil {
		return nil, nil
	}
	var m map[string]any
	switch v := raw.(type) {
	case map[string]any:
		m = v
	case json.RawMessage:
		if len(v) == 0 {
			return nil, nil
		}
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, fmt.Errorf("decode input schema: %w", err)
		}
	default:
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encode input schema: %w", err)
		}
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode input schema: %w", err)
		}
	}
	s := tool.SchemaFromMap(m)
	return &s, nil
}

// flattenContent extracts the first text block, falling back to a JSON
// rendering of the whole content list for non-text results.
func flattenContent(content []mcp.Content) string {
	for _, part := range content {
		if txt, ok := part.(*mcp.TextContent); ok {
			return txt.Text
		}
	}
	if payload, err := json.Marshal(content); err == nil {
		return string(payload)
	}
	return ""
}
