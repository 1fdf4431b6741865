package builtin

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandbridge/sandbridge/tool"
	"github.com/sandbridge/sandbridge/workspace"
)

type shellArgs struct {
	Command string `json:"command"`
	Timeout int    `json:"timeout" default:"30"`
}

type uvAddArgs struct {
	Package string `json:"package"`
}

type runScriptArgs struct {
	FileName    string `json:"file_name"`
	Code        string `json:"code"`
	Interpreter string `json:"interpreter" default:"python3"`
}

func registerProcessTools(reg *tool.Registry, ws *workspace.Gateway) {
	reg.RegisterFunc("shell", func(ctx context.Context, args map[string]any) (any, error) {
		command, _ := args["command"].(string)
		timeout := intArg(args["timeout"], 30)
		return runShell(ctx, ws, command, timeout), nil
	}, "Run a shell command in the workspace and return its output.", shellArgs{})

	reg.RegisterFunc("uv_add", func(ctx context.Context, args map[string]any) (any, error) {
		pkg, _ := args["package"].(string)
		if pkg == "" {
			return "Error: no package name given", nil
		}
		cmd := exec.CommandContext(ctx, "uv", "add", pkg)
		cmd.Dir = ws.Root()
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Sprintf("Failed to install %s: %v\n%s", pkg, err, out), nil
		}
		return fmt.Sprintf("Successfully installed %s", pkg), nil
	}, "Install a Python package into the workspace environment with uv.", uvAddArgs{})

	reg.RegisterFunc("save_and_run_script", func(ctx context.Context, args map[string]any) (any, error) {
		fileName, _ := args["file_name"].(string)
		codeText, _ := args["code"].(string)
		interpreter, _ := args["interpreter"].(string)
		if interpreter == "" {
			interpreter = "python3"
		}
		return saveAndRun(ctx, ws, fileName, codeText, interpreter), nil
	}, "Save code to a workspace file and run it with the given interpreter. The script has no access to the registered tools.", runScriptArgs{})
}

func runShell(ctx context.Context, ws *workspace.Gateway, command string, timeoutSec int) string {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = ws.Root()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Sprintf("Command timed out after %d seconds", timeoutSec)
	}

	out := stdout.String()
	if stderr.Len() > 0 {
		out += "\n\nSTDERR:\n" + stderr.String()
	}
	if err != nil {
		out += fmt.Sprintf("\n\nCommand failed: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		return "Command completed with no output"
	}
	return out
}

func saveAndRun(ctx context.Context, ws *workspace.Gateway, fileName, codeText, interpreter string) string {
	if fileName == "" {
		return "Error: no file name given"
	}
	if filepath.Ext(fileName) == "" {
		fileName += ".py"
	}

	if msg := ws.Write(fileName, codeText); !strings.HasPrefix(msg, "Successfully") {
		return msg
	}
	abs, err := ws.Join(fileName)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	cmd := exec.CommandContext(ctx, interpreter, abs)
	cmd.Dir = ws.Root()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := stderr.String()
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Sprintf("Error running %s:\n%s", fileName, detail)
	}
	if stderr.Len() > 0 {
		return fmt.Sprintf("Output:\n%s\n\nWarnings:\n%s", stdout.String(), stderr.String())
	}
	if stdout.Len() > 0 {
		return stdout.String()
	}
	return fmt.Sprintf("%s ran successfully (no output)", fileName)
}
