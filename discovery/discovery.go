// Package discovery makes the registry searchable from executed code.
//
// BuildIndex mirrors a registry into a tooldiscovery index plus a
// documentation store; Install layers two metatools on top, search_tools
// and describe_tool, so snippets can find tools by keyword instead of
// scanning the full instruction listing.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sandbridge/sandbridge/tool"
)

// Namespace groups every registry tool in the discovery index.
const Namespace = "tools"

// BuildIndex mirrors the registry's current definitions into a fresh
// in-memory index and documentation store.
func BuildIndex(reg *tool.Registry) (index.Index, *tooldoc.InMemoryStore, error) {
	idx := index.NewInMemoryIndex()
	docs := tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})

	for _, def := range reg.Definitions() {
		entry := model.Tool{
			Tool: mcp.Tool{
				Name:        def.Name,
				Description: def.Description,
				InputSchema: def.Schema.ToMap(),
			},
			Namespace: Namespace,
		}
		if err := idx.RegisterTool(entry, model.NewLocalBackend(def.Name)); err != nil {
			return nil, nil, fmt.Errorf("index %s: %w", def.Name, err)
		}
		doc := tooldoc.DocEntry{Summary: def.Description}
		if err := docs.RegisterDoc(toolID(def.Name), doc); err != nil {
			return nil, nil, fmt.Errorf("document %s: %w", def.Name, err)
		}
	}
	return idx, docs, nil
}

// searchArgs is the inference prototype for search_tools.
type searchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit" default:"5"`
}

// describeArgs is the inference prototype for describe_tool.
type describeArgs struct {
	Name string `json:"name"`
}

// Install indexes the registry's current tools and registers the
// search_tools and describe_tool metatools. Tools registered after Install
// are not visible to search until Install runs again.
func Install(reg *tool.Registry) error {
	idx, docs, err := BuildIndex(reg)
	if err != nil {
		return err
	}

	reg.RegisterFunc("search_tools", func(ctx context.Context, args map[string]any) (any, error) {
		query, _ := args["query"].(string)
		limit := intArg(args["limit"], 5)
		results, err := idx.Search(query, limit)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		if len(results) == 0 {
			return fmt.Sprintf("No tools found matching %q", query), nil
		}
		var b strings.Builder
		for _, r := range results {
			fmt.Fprintf(&b, "%s: %s\n", strings.TrimPrefix(r.ID, Namespace+":"), r.ShortDescription)
		}
		return b.String(), nil
	}, "Search available tools by keyword. Returns matching tool names with short descriptions.", searchArgs{})

	reg.RegisterFunc("describe_tool", func(ctx context.Context, args map[string]any) (any, error) {
		name, _ := args["name"].(string)
		doc, err := docs.DescribeTool(toolID(name), tooldoc.DetailFull)
		if err != nil {
			return fmt.Sprintf("Unknown tool: %s", name), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s\n", name, doc.Summary)
		if doc.Notes != "" {
			fmt.Fprintf(&b, "\n%s\n", doc.Notes)
		}
		if def, ok := reg.Get(name); ok && len(def.Schema.Order) > 0 {
			b.WriteString("\nParameters:\n")
			for _, p := range def.Schema.Order {
				prop := def.Schema.Properties[p]
				fmt.Fprintf(&b, "- %s (%s)\n", p, prop.Type)
			}
		}
		return b.String(), nil
	}, "Show the full documentation and parameters for one tool.", describeArgs{})

	return nil
}

func toolID(name string) string {
	return Namespace + ":" + name
}

func intArg(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n
		}
	case int64:
		if n > 0 {
			return int(n)
		}
	case float64:
		if n > 0 {
			return int(n)
		}
	}
	return fallback
}
