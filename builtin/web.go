package builtin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tmc/langchaingo/tools/duckduckgo"

	"github.com/sandbridge/sandbridge/tool"
)

type webSearchArgs struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results" default:"5"`
}

type fetchURLArgs struct {
	URL         string `json:"url"`
	ExtractText bool   `json:"extract_text" default:"true"`
}

func registerWebTools(reg *tool.Registry, opts Options) {
	reg.RegisterFunc("web_search", func(ctx context.Context, args map[string]any) (any, error) {
		query, _ := args["query"].(string)
		n := intArg(args["num_results"], 5)

		ddg, err := duckduckgo.New(n, opts.UserAgent)
		if err != nil {
			return fmt.Sprintf("Error searching for %q: %v", query, err), nil
		}
		results, err := ddg.Call(ctx, query)
		if err != nil {
			return fmt.Sprintf("Error searching for %q: %v", query, err), nil
		}
		return results, nil
	}, "Search the web with DuckDuckGo and return result titles, links, and snippets.", webSearchArgs{})

	reg.RegisterFunc("fetch_url", func(ctx context.Context, args map[string]any) (any, error) {
		target, _ := args["url"].(string)
		extract := true
		if v, ok := args["extract_text"].(bool); ok {
			extract = v
		}
		return fetchURL(ctx, opts, target, extract), nil
	}, "Fetch a web page. Extracts the readable text by default; pass extract_text=False for the raw body.", fetchURLArgs{})
}

func fetchURL(ctx context.Context, opts Options, target string, extract bool) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Sprintf("Error fetching %s: invalid URL: %v", target, err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.HTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Sprintf("Error fetching %s: %v", target, err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error fetching %s: %v", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error fetching %s: status code %d", target, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if extract && strings.Contains(contentType, "html") {
		article, err := readability.FromReader(resp.Body, parsed)
		if err != nil {
			return fmt.Sprintf("Error extracting content from %s: %v", target, err)
		}
		text := bluemonday.StrictPolicy().Sanitize(article.TextContent)
		if len(text) > opts.MaxContentChars {
			text = text[:opts.MaxContentChars] + "\n... (content truncated) ..."
		}
		if article.Title != "" {
			return fmt.Sprintf("TITLE: %s\n\n%s", article.Title, text)
		}
		return text
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(opts.MaxBodyBytes)+1))
	if err != nil {
		return fmt.Sprintf("Error reading %s: %v", target, err)
	}
	if len(body) > opts.MaxBodyBytes {
		return string(body[:opts.MaxBodyBytes]) + "\n... (body truncated) ..."
	}
	return string(body)
}

func intArg(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n
		}
	case int64:
		if n > 0 {
			return int(n)
		}
	case float64:
		if n > 0 {
			return int(n)
		}
	}
	return fallback
}
