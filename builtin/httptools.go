package builtin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sandbridge/sandbridge/tool"
)

type httpGetArgs struct {
	URL string `json:"url"`
}

type httpPostArgs struct {
	URL         string `json:"url"`
	Body        string `json:"body" default:""`
	ContentType string `json:"content_type" default:"application/json"`
}

func registerHTTPTools(reg *tool.Registry, opts Options) {
	reg.RegisterFunc("http_get", func(ctx context.Context, args map[string]any) (any, error) {
		target, _ := args["url"].(string)
		return doRequest(ctx, opts, http.MethodGet, target, "", ""), nil
	}, "Perform an HTTP GET request and return the status line and body.", httpGetArgs{})

	reg.RegisterFunc("http_post", func(ctx context.Context, args map[string]any) (any, error) {
		target, _ := args["url"].(string)
		body, _ := args["body"].(string)
		contentType, _ := args["content_type"].(string)
		if contentType == "" {
			contentType = "application/json"
		}
		return doRequest(ctx, opts, http.MethodPost, target, body, contentType), nil
	}, "Perform an HTTP POST request with the given body and return the status line and response body.", httpPostArgs{})
}

func doRequest(ctx context.Context, opts Options, method, target, body, contentType string) string {
	ctx, cancel := context.WithTimeout(ctx, opts.HTTPTimeout)
	defer cancel()

	var payload io.Reader
	if body != "" {
		payload = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Sprintf("Error requesting %s: %v", target, err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error requesting %s: %v", target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(opts.MaxBodyBytes)+1))
	if err != nil {
		return fmt.Sprintf("Error reading response from %s: %v", target, err)
	}
	text := string(data)
	if len(data) > opts.MaxBodyBytes {
		text = string(data[:opts.MaxBodyBytes]) + "\n... (body truncated) ..."
	}
	return fmt.Sprintf("HTTP %d\n%s", resp.StatusCode, text)
}
