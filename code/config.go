package code

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandbridge/sandbridge/tool"
)

// Config holds the configuration for an Executor.
type Config struct {
	// Registry supplies the tools injected into every execution namespace.
	// Required.
	Registry *tool.Registry

	// Engine is the pluggable interpreter.
	// Required.
	Engine Engine

	// DefaultTimeout bounds each execution when ExecuteParams carries no
	// timeout. Zero means no default timeout.
	DefaultTimeout time.Duration

	// MaxToolCalls caps tool invocations per execution. Zero means
	// unlimited.
	MaxToolCalls int

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string
	if c.Registry == nil {
		missing = append(missing, "Registry")
	}
	if c.Engine == nil {
		missing = append(missing, "Engine")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}
