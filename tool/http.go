package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ai "github.com/spetersoncode/forge"
)

// FetchToolOption configures the fetch tool.
type FetchToolOption func(*fetchToolConfig)

type fetchToolConfig struct {
	client          *http.Client
	allowedHosts    []string
	maxResponseSize int64
	timeout         time.Duration
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) FetchToolOption {
	return func(cfg *fetchToolConfig) {
		cfg.client = c
	}
}

// WithAllowedHosts restricts requests to specific hosts only.
func WithAllowedHosts(hosts ...string) FetchToolOption {
	return func(cfg *fetchToolConfig) {
		cfg.allowedHosts = hosts
	}
}

// WithMaxResponseSize sets the maximum response body size. Default is 1MB.
func WithMaxResponseSize(bytes int64) FetchToolOption {
	return func(cfg *fetchToolConfig) {
		cfg.maxResponseSize = bytes
	}
}

// WithFetchTimeout sets the request timeout. Default is 30 seconds.
func WithFetchTimeout(d time.Duration) FetchToolOption {
	return func(cfg *fetchToolConfig) {
		cfg.timeout = d
	}
}

func applyFetchOpts(opts []FetchToolOption) *fetchToolConfig {
	cfg := &fetchToolConfig{
		maxResponseSize: 1024 * 1024,
		timeout:         30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}
	return cfg
}

func (c *fetchToolConfig) checkHost(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if len(c.allowedHosts) == 0 {
		return nil
	}

	host := u.Hostname()
	for _, a := range c.allowedHosts {
		if host == a || strings.HasSuffix(host, "."+a) {
			return nil
		}
	}
	return fmt.Errorf("host %q is not in allowed list", host)
}

// fetchArgs defines arguments for the fetch tool.
type fetchArgs struct {
	URL string `json:"url" desc:"The URL to fetch." required:"true"`
}

// NewFetchTool creates a tool for fetching the contents of a URL.
func NewFetchTool(opts ...FetchToolOption) Registration {
	cfg := applyFetchOpts(opts)

	t := ai.Tool{
		Name:        "fetch",
		Description: "Fetch the contents of a URL over HTTP GET.",
		Parameters:  ai.MustSchemaFor[fetchArgs](),
	}

	handler := typedHandler(func(ctx context.Context, args fetchArgs) (string, error) {
		if err := cfg.checkHost(args.URL); err != nil {
			return "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, args.URL, nil)
		if err != nil {
			return "", err
		}

		resp, err := cfg.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.maxResponseSize))
		if err != nil {
			return "", err
		}

		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("request failed with status %s", resp.Status)
		}
		return string(body), nil
	})

	return Registration{Tool: t, Handler: handler}
}
