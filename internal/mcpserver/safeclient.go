package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/erraggy/jfather/internal/httputil"
)

// maxRedirects bounds redirect chains followed while fetching references.
const maxRedirects = 10

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// checkHost resolves host and fails if any of its addresses is blocked.
func checkHost(ctx context.Context, host string) ([]net.IPAddr, error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("no IP addresses found for host: %s", host)
	}
	for _, ipAddr := range ips {
		if isBlockedIP(ipAddr.IP) {
			return nil, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, ipAddr.IP)
		}
	}
	return ips, nil
}

// newSafeHTTPClient creates an HTTP client that blocks requests to
// private/loopback/link-local IPs, including after redirects. Used when
// resolving $extends references supplied by MCP clients.
func newSafeHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	client := httputil.NewClient(timeout)
	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := checkHost(ctx, host)
			if err != nil {
				return nil, err
			}
			// Dial the checked address so a second lookup cannot change it.
			return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
		},
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		_, err := checkHost(req.Context(), req.URL.Hostname())
		return err
	}
	return client
}

// newHTTPClient returns the client used for reference retrieval under the
// current configuration.
func newHTTPClient() *http.Client {
	if cfg.AllowPrivateIPs {
		return httputil.NewClient(cfg.FetchTimeout)
	}
	return newSafeHTTPClient(cfg.FetchTimeout)
}
