package tool

import (
	"context"
	"strings"
	"testing"
)

func echoHandler(value any) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		return value, nil
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", echoHandler("first"), "first version")
	reg.Register("x", echoHandler("second"), "second version")

	if got := len(reg.List()); got != 1 {
		t.Fatalf("expected exactly one entry, got %d", got)
	}
	def, ok := reg.Get("x")
	if !ok {
		t.Fatal("expected x to be present")
	}
	if def.Description != "second version" {
		t.Errorf("description = %q, want the second registration", def.Description)
	}
	out, err := def.Handler(context.Background(), nil)
	if err != nil || out != "second" {
		t.Errorf("handler returned (%v, %v), want second", out, err)
	}
}

func TestRegistry_NamespaceSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Register("a", echoHandler(1), "a")

	ns := reg.Namespace()
	reg.Register("b", echoHandler(2), "b")

	if _, ok := ns["b"]; ok {
		t.Error("snapshot reflected a later registration")
	}
	if _, ok := ns["a"]; !ok {
		t.Error("snapshot missing a")
	}
}

func TestRegistry_GetAbsent(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Get("missing"); ok {
		t.Error("expected absence for unregistered name")
	}
}

func TestInstructions_EmptyRegistry(t *testing.T) {
	if got := NewRegistry().Instructions(); got != "" {
		t.Fatalf("empty registry instructions = %q, want empty string", got)
	}
}

func TestInstructions_OrderAndAnnotations(t *testing.T) {
	type searchArgs struct {
		Query      string
		NumResults int `default:"5"`
		Region     *string
	}
	reg := NewRegistry()
	reg.RegisterFunc("web_search", echoHandler(""), "Search the web", searchArgs{})
	reg.Register("noop", echoHandler(""), "Does nothing")

	doc := reg.Instructions()

	for _, want := range []string{
		"## Available Tools",
		"### `web_search`",
		"Search the web",
		"- `query` (string, required)",
		"- `num_results` (integer, default=5)",
		"- `region` (string, optional)",
		"### `noop`",
		"Does nothing",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("instructions missing %q\n%s", want, doc)
		}
	}
	if strings.Count(doc, "### `web_search`") != 1 {
		t.Error("web_search documented more than once")
	}
	if strings.Index(doc, "web_search") > strings.Index(doc, "noop") {
		t.Error("tools not documented in registration order")
	}
}

func TestInstructions_Deterministic(t *testing.T) {
	reg := NewRegistry()
	reg.Register("one", echoHandler(1), "first")
	reg.Register("two", echoHandler(2), "second")
	if reg.Instructions() != reg.Instructions() {
		t.Error("instructions not deterministic")
	}
}
