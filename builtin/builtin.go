package builtin

import (
	"time"

	"github.com/sandbridge/sandbridge/tool"
	"github.com/sandbridge/sandbridge/workspace"
)

// Options tunes the built-in tool set. The zero value is usable.
type Options struct {
	// UserAgent is sent on outbound HTTP requests. Defaults to a common
	// browser string, since many sites reject obvious bots.
	UserAgent string

	// HTTPTimeout bounds each outbound request. Defaults to 30s.
	HTTPTimeout time.Duration

	// MaxBodyBytes caps raw response bodies returned by the HTTP tools.
	// Defaults to 10000.
	MaxBodyBytes int

	// MaxContentChars caps extracted page text from fetch_url.
	// Defaults to 50000.
	MaxContentChars int
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.HTTPTimeout == 0 {
		o.HTTPTimeout = 30 * time.Second
	}
	if o.MaxBodyBytes == 0 {
		o.MaxBodyBytes = 10000
	}
	if o.MaxContentChars == 0 {
		o.MaxContentChars = 50000
	}
	return o
}

// RegisterAll registers the full built-in tool set into reg. File tools
// are confined to ws.
func RegisterAll(reg *tool.Registry, ws *workspace.Gateway, opts Options) {
	opts = opts.withDefaults()
	registerWebTools(reg, opts)
	registerHTTPTools(reg, opts)
	registerProcessTools(reg, ws)
	registerFileTools(reg, ws)
}
