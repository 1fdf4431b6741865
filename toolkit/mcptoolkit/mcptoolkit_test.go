package mcptoolkit

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sandbridge/sandbridge/tool"
	"github.com/sandbridge/sandbridge/toolkit"
)

func newTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{Name: "test-server", Version: "dev"}, nil)
	server.AddTool(&mcp.Tool{
		Name:        "echo",
		Description: "Echoes its input.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []any{"text"},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return nil, err
		}
		text, _ := args["text"].(string)
		if text == "explode" {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: "refused"}},
			}, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "echo: " + text}},
		}, nil
	})

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverCtx, serverCancel := context.WithCancel(context.Background())
	serverSession, err := server.Connect(serverCtx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "dev"}, nil)
	clientSession, err := client.Connect(context.Background(), clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Close()
		serverCancel()
	})
	return clientSession
}

func TestFunctionsListsServerTools(t *testing.T) {
	tk := New("remote", newTestSession(t))

	fns, err := tk.Functions()
	if err != nil {
		t.Fatalf("Functions() error = %v", err)
	}
	fn, ok := fns["echo"]
	if !ok {
		t.Fatalf("Functions() = %v, want echo", fns)
	}
	if fn.Description != "Echoes its input." {
		t.Errorf("Description = %q", fn.Description)
	}
	if fn.Schema == nil {
		t.Fatal("Schema = nil, want converted input schema")
	}
	if fn.Schema.Required[0] != "text" {
		t.Errorf("Schema.Required = %v, want [text]", fn.Schema.Required)
	}
}

func TestHandlerCallsRemoteTool(t *testing.T) {
	tk := New("remote", newTestSession(t))

	fns, err := tk.Functions()
	if err != nil {
		t.Fatalf("Functions() error = %v", err)
	}
	got, err := fns["echo"].Handler(context.Background(), map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got != "echo: hi" {
		t.Errorf("handler = %v, want %q", got, "echo: hi")
	}
}

func TestHandlerSurfacesRemoteError(t *testing.T) {
	tk := New("remote", newTestSession(t))

	fns, err := tk.Functions()
	if err != nil {
		t.Fatalf("Functions() error = %v", err)
	}
	_, err = fns["echo"].Handler(context.Background(), map[string]any{"text": "explode"})
	if err == nil {
		t.Fatal("handler error = nil, want remote failure")
	}
	if !strings.Contains(err.Error(), "refused") {
		t.Errorf("handler error = %q, want remote message", err)
	}
}

func TestLoadIntoRegistry(t *testing.T) {
	reg := tool.NewRegistry()
	tk := New("remote", newTestSession(t))

	names, err := toolkit.Load(reg, tk, "remote_")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(names) != 1 || names[0] != "remote_echo" {
		t.Errorf("Load() = %v, want [remote_echo]", names)
	}
	if _, ok := reg.Get("remote_echo"); !ok {
		t.Error("registry missing remote_echo")
	}
}
