package gateway

import (
	"fmt"
	"net/http"
	"strings"
)

// AllowlistRoundTripper refuses requests to hosts other than the backend
// and the configured extra hosts.
type AllowlistRoundTripper struct {
	Base      http.RoundTripper
	Allowlist map[string]bool
}

// NewAllowlistRoundTripper wraps base. Host names are compared
// case-insensitively and without port.
func NewAllowlistRoundTripper(base http.RoundTripper, hosts []string) *AllowlistRoundTripper {
	allowlist := make(map[string]bool, len(hosts))
	for _, host := range hosts {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			allowlist[host] = true
		}
	}
	return &AllowlistRoundTripper{Base: base, Allowlist: allowlist}
}

func (rt *AllowlistRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := rt.check(req); err != nil {
		return nil, err
	}
	base := rt.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// check returns ErrEgressBlocked wrapped with the offending target.
func (rt *AllowlistRoundTripper) check(req *http.Request) error {
	if req.URL == nil {
		return fmt.Errorf("%w: request without url", ErrEgressBlocked)
	}
	switch req.URL.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("%w: scheme %q", ErrEgressBlocked, req.URL.Scheme)
	}
	host := strings.ToLower(req.URL.Hostname())
	if host == "" || !rt.Allowlist[host] {
		return fmt.Errorf("%w: %s", ErrEgressBlocked, req.URL.Host)
	}
	return nil
}
