package mcpserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},      // loopback
		{"10.0.0.1", true},       // private (Class A)
		{"172.16.0.1", true},     // private (Class B)
		{"192.168.1.1", true},    // private (Class C)
		{"169.254.1.1", true},    // link-local
		{"::1", true},            // IPv6 loopback
		{"0.0.0.0", true},        // unspecified IPv4
		{"::", true},             // unspecified IPv6
		{"fe80::1", true},        // IPv6 link-local
		{"fd00::1", true},        // IPv6 ULA (private)
		{"8.8.8.8", false},       // public
		{"1.1.1.1", false},       // public
		{"93.184.216.34", false}, // public
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip, "failed to parse IP: %s", tt.ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient(5 * time.Second)
	require.NotNil(t, client)
	assert.Equal(t, 5*time.Second, client.Timeout)
	assert.NotNil(t, client.CheckRedirect)
	assert.NotNil(t, client.Transport)
}

func TestNewSafeHTTPClient_BlocksLoopback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newSafeHTTPClient(5 * time.Second)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	if resp != nil {
		_ = resp.Body.Close()
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked request to private/loopback IP")
}

func TestNewHTTPClient_AllowPrivate(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.AllowPrivateIPs = true })
	client := newHTTPClient()
	assert.Nil(t, client.CheckRedirect)
}
