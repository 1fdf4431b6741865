// Package workspace confines file operations to a single root directory.
//
// The gateway is the security boundary for file access from executed code:
// every path is resolved against the workspace root, canonicalized, and
// rejected when the resolution escapes it. Operations report failures as
// diagnostic strings rather than errors because their consumers are
// interpreter builtins whose contract is textual.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Gateway performs path-confined file operations relative to a fixed root.
type Gateway struct {
	root string
}

// New creates a gateway rooted at dir, creating the directory if absent.
// The root is canonicalized once so later containment checks compare
// resolved paths.
func New(dir string) (*Gateway, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	return &Gateway{root: resolved}, nil
}

// Root returns the canonical workspace root directory.
func (g *Gateway) Root() string {
	return g.root
}

// Join resolves a workspace-relative path and verifies it stays inside the
// root, following symlinks on the existing portion of the path. This is the
// sole protection against path-traversal escape.
func (g *Gateway) Join(rel string) (string, error) {
	target := filepath.Join(g.root, rel)
	if !g.contains(target) {
		return "", fmt.Errorf("path %q is outside the workspace directory", rel)
	}
	// A symlink inside the workspace may still point out of it. Resolve the
	// deepest existing ancestor and re-check.
	if resolved, err := resolveExisting(target); err == nil && !g.contains(resolved) {
		return "", fmt.Errorf("path %q is outside the workspace directory", rel)
	}
	return target, nil
}

func (g *Gateway) contains(abs string) bool {
	rel, err := filepath.Rel(g.root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// resolveExisting canonicalizes the longest existing prefix of target and
// re-joins the remainder, so not-yet-created files still get a resolved
// parent.
func resolveExisting(target string) (string, error) {
	remainder := ""
	dir := target
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(resolved, remainder), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", err
		}
		remainder = filepath.Join(filepath.Base(dir), remainder)
		dir = parent
	}
}

// Read returns the contents of a workspace file, or a diagnostic.
func (g *Gateway) Read(rel string) string {
	target, err := g.Join(rel)
	if err != nil {
		return "Error: " + err.Error()
	}
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("File not found: %s", rel)
		}
		return fmt.Sprintf("Error reading file: %v", err)
	}
	return string(data)
}

// Write stores content at a workspace path, creating intermediate
// directories and overwriting any existing file.
func (g *Gateway) Write(rel, content string) string {
	target, err := g.Join(rel)
	if err != nil {
		return "Error: " + err.Error()
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Sprintf("Error writing file: %v", err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Error writing file: %v", err)
	}
	return fmt.Sprintf("Successfully wrote %d bytes to %s", len(content), rel)
}

// List returns a sorted newline-separated listing of workspace files whose
// relative path or base name matches the glob pattern.
func (g *Gateway) List(pattern string) string {
	if pattern == "" {
		pattern = "*"
	}
	var matches []string
	err := filepath.WalkDir(g.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == g.root {
			return nil
		}
		rel, err := filepath.Rel(g.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := path.Match(pattern, rel); ok {
			matches = append(matches, rel)
			return nil
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok && !d.IsDir() {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return fmt.Sprintf("Error listing files: %v", err)
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No files matching %q in workspace", pattern)
	}
	sort.Strings(matches)
	return strings.Join(matches, "\n")
}
