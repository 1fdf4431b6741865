package discovery

import (
	"context"
	"strings"
	"testing"

	"github.com/sandbridge/sandbridge/tool"
)

func seededRegistry() *tool.Registry {
	reg := tool.NewRegistry()
	reg.Register("web_search", func(ctx context.Context, args map[string]any) (any, error) {
		return "results", nil
	}, "Search the web for pages matching a query.")
	reg.Register("read_file", func(ctx context.Context, args map[string]any) (any, error) {
		return "contents", nil
	}, "Read a file from the workspace.")
	return reg
}

func TestBuildIndex(t *testing.T) {
	reg := seededRegistry()

	idx, docs, err := BuildIndex(reg)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if idx == nil || docs == nil {
		t.Fatal("BuildIndex() returned nil index or store")
	}
}

func TestInstallRegistersMetatools(t *testing.T) {
	reg := seededRegistry()

	if err := Install(reg); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	for _, name := range []string{"search_tools", "describe_tool"} {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("registry missing %s", name)
		}
	}
}

func TestDescribeTool(t *testing.T) {
	reg := seededRegistry()
	if err := Install(reg); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	def, _ := reg.Get("describe_tool")
	got, err := def.Handler(context.Background(), map[string]any{"name": "web_search"})
	if err != nil {
		t.Fatalf("describe_tool error = %v", err)
	}
	text, ok := got.(string)
	if !ok {
		t.Fatalf("describe_tool = %T, want string", got)
	}
	if !strings.Contains(text, "web_search") || !strings.Contains(text, "Search the web") {
		t.Errorf("describe_tool = %q, want name and summary", text)
	}
}

func TestDescribeUnknownTool(t *testing.T) {
	reg := seededRegistry()
	if err := Install(reg); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	def, _ := reg.Get("describe_tool")
	got, err := def.Handler(context.Background(), map[string]any{"name": "nope"})
	if err != nil {
		t.Fatalf("describe_tool error = %v", err)
	}
	if text, _ := got.(string); !strings.Contains(text, "Unknown tool") {
		t.Errorf("describe_tool = %v, want unknown-tool message", got)
	}
}

func TestSearchTools(t *testing.T) {
	reg := seededRegistry()
	if err := Install(reg); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	def, _ := reg.Get("search_tools")
	got, err := def.Handler(context.Background(), map[string]any{"query": "web_search"})
	if err != nil {
		t.Fatalf("search_tools error = %v", err)
	}
	text, ok := got.(string)
	if !ok {
		t.Fatalf("search_tools = %T, want string", got)
	}
	if text == "" {
		t.Error("search_tools returned empty output")
	}
}
