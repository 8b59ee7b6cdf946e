// Package gateway talks to the playground backend and folds every response
// into one of three outcomes.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/interpretive-systems/playpen/internal/logx"
)

var (
	// ErrEgressBlocked is returned for requests to hosts outside the allowlist.
	ErrEgressBlocked = errors.New("egress blocked")
)

// StderrHeader carries diagnostics accompanying a successful response.
const StderrHeader = "X-Playground-Stderr"

const maxErrorBodyBytes = 2048

// DefaultTimeout bounds a request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client sends requests to one backend.
type Client struct {
	baseURL    *url.URL
	client     *http.Client
	timeout    time.Duration
	extraHosts []string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// still wrapped by the host allowlist.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.client = &cp
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithAllowedHosts extends the allowlist beyond the base URL's host.
func WithAllowedHosts(hosts ...string) Option {
	return func(c *Client) { c.extraHosts = append(c.extraHosts, hosts...) }
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must include scheme and host", baseURL)
	}
	c := &Client{baseURL: u, client: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	switch {
	case c.timeout > 0:
		c.client.Timeout = c.timeout
	case c.client.Timeout == 0:
		c.client.Timeout = DefaultTimeout
	}
	base := c.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hosts := append([]string{u.Hostname()}, c.extraHosts...)
	c.client.Transport = NewAllowlistRoundTripper(base, hosts)
	return c, nil
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Post JSON-encodes body and sends it to path.
func (c *Client) Post(ctx context.Context, path string, body any) Result {
	payload, err := json.Marshal(body)
	if err != nil {
		return TransportFailure{Message: fmt.Sprintf("Could not encode request: %v", err), Err: err}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload))
}

// Get fetches path.
func (c *Client) Get(ctx context.Context, path string) Result {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) Result {
	log := logx.WithRequest(logx.Ctx(ctx), method, path)
	target := *c.baseURL
	target.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	target.RawPath = ""
	target.RawQuery = ""
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return TransportFailure{Message: fmt.Sprintf("Network error: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	log.Debug("gateway request")
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("gateway transport failure", "err", err)
		return TransportFailure{Message: fmt.Sprintf("Network error: %v", networkCause(err)), Err: err}
	}
	defer resp.Body.Close()
	log.Debug("gateway response", "status", resp.StatusCode, "duration", time.Since(started))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return TransportFailure{Message: fmt.Sprintf("Could not get response body: %v", err), Status: resp.StatusCode, Err: err}
		}
		diag, err := diagnostics(resp.Header.Get(StderrHeader))
		if err != nil {
			return TransportFailure{Message: fmt.Sprintf("Could not parse stderr: %v", err), Status: resp.StatusCode, Err: err}
		}
		return Success{Body: data, Diagnostics: diag, ContentType: resp.Header.Get("Content-Type")}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return TransportFailure{Message: fmt.Sprintf("Could not parse stderr: %v", err), Status: resp.StatusCode, Err: err}
		}
		log.Debug("gateway compile failure", "status", resp.StatusCode)
		return CompileFailure{Diagnostics: string(data), Status: resp.StatusCode}
	default:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		msg := fmt.Sprintf("Unexpected response: %s", resp.Status)
		if text := strings.TrimSpace(string(data)); text != "" {
			msg += ": " + text
		}
		log.Warn("gateway unexpected status", "status", resp.StatusCode)
		return TransportFailure{Message: msg, Status: resp.StatusCode}
	}
}

// diagnostics decodes the stderr header. The backend percent-encodes it so
// multi-line output survives as a header value.
func diagnostics(h string) (string, error) {
	if h == "" {
		return "", nil
	}
	return url.QueryUnescape(h)
}

func networkCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
