// Package toolkit groups related tools behind a single loadable unit.
//
// A Toolkit enumerates named functions; Load flattens them into a
// tool.Registry under an optional prefix, synthesizing descriptions and
// schemas where the toolkit provides none. LoadAll wires several toolkits
// at once and keeps going when one fails, so a dead upstream never takes
// the rest of the registry down with it.
package toolkit

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sandbridge/sandbridge/code"
	"github.com/sandbridge/sandbridge/tool"
)

// Function is one callable exposed by a toolkit.
type Function struct {
	// Handler executes the function. Required.
	Handler tool.Handler

	// Description documents the function for model-facing listings. If
	// empty, Load synthesizes one from the function and toolkit names.
	Description string

	// Schema describes the parameters. If nil, the function registers
	// with an empty schema and accepts free-form keyword arguments.
	Schema *tool.Schema
}

// Toolkit is a named group of functions.
type Toolkit interface {
	// Name identifies the toolkit in synthesized descriptions and logs.
	Name() string

	// Functions enumerates the toolkit's callables keyed by bare name.
	Functions() (map[string]Function, error)
}

// Builder constructs a toolkit, typically by connecting to an upstream.
type Builder func() (Toolkit, error)

var titler = cases.Title(language.Und)

// Load registers every function of tk into reg, prepending prefix to each
// name. It returns the final registered names in sorted order.
func Load(reg *tool.Registry, tk Toolkit, prefix string) ([]string, error) {
	fns, err := tk.Functions()
	if err != nil {
		return nil, fmt.Errorf("toolkit %s: %w", tk.Name(), err)
	}

	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)

	registered := make([]string, 0, len(names))
	for _, name := range names {
		fn := fns[name]
		desc := fn.Description
		if desc == "" {
			desc = synthesizeDescription(name, tk.Name())
		}
		full := prefix + name
		if fn.Schema != nil {
			reg.RegisterWithSchema(full, fn.Handler, desc, *fn.Schema)
		} else {
			reg.Register(full, fn.Handler, desc)
		}
		registered = append(registered, full)
	}
	return registered, nil
}

// LoadAll builds and loads each toolkit in turn. A toolkit that fails to
// build or enumerate is logged and skipped; the rest still load. Returns
// all names registered across the toolkits that succeeded.
func LoadAll(reg *tool.Registry, logger code.Logger, builders ...Builder) []string {
	var all []string
	for _, build := range builders {
		tk, err := build()
		if err != nil {
			if logger != nil {
				logger.Logf("toolkit load failed: %v", err)
			}
			continue
		}
		names, err := Load(reg, tk, "")
		if err != nil {
			if logger != nil {
				logger.Logf("toolkit load failed: %v", err)
			}
			continue
		}
		all = append(all, names...)
	}
	return all
}

// synthesizeDescription derives a readable description from a snake_case
// function name, e.g. "fetch_page" in kit "web" becomes "Fetch Page from
// web".
func synthesizeDescription(name, kit string) string {
	words := titler.String(strings.ReplaceAll(name, "_", " "))
	return fmt.Sprintf("%s from %s", words, kit)
}
