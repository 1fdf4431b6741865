package builtin

import (
	"context"

	"github.com/sandbridge/sandbridge/tool"
	"github.com/sandbridge/sandbridge/workspace"
)

type readFileArgs struct {
	Path string `json:"path"`
}

type writeFileArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type listFilesArgs struct {
	Pattern string `json:"pattern" default:"*"`
}

func registerFileTools(reg *tool.Registry, ws *workspace.Gateway) {
	reg.RegisterFunc("read_file", func(ctx context.Context, args map[string]any) (any, error) {
		path, _ := args["path"].(string)
		return ws.Read(path), nil
	}, "Read a file from the workspace.", readFileArgs{})

	reg.RegisterFunc("write_file", func(ctx context.Context, args map[string]any) (any, error) {
		path, _ := args["path"].(string)
		content, _ := args["content"].(string)
		return ws.Write(path, content), nil
	}, "Write content to a workspace file, creating parent directories as needed.", writeFileArgs{})

	reg.RegisterFunc("list_files", func(ctx context.Context, args map[string]any) (any, error) {
		pattern, _ := args["pattern"].(string)
		if pattern == "" {
			pattern = "*"
		}
		return ws.List(pattern), nil
	}, "List workspace files matching a glob pattern.", listFilesArgs{})
}
