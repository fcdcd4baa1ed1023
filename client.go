package linguachain

import (
	"net"
	"net/http"
	"time"
)

// DefaultDialTimeout bounds connection establishment to a provider.
const DefaultDialTimeout = 8 * time.Second

// HTTPConfig configures the client built by NewHTTPClient.
type HTTPConfig struct {
	DialTimeout       time.Duration // Connect timeout (default: 8s)
	RequestTimeout    time.Duration // Whole-request timeout (default: 10s)
	RequestsPerMinute int           // Outbound rate limit; 0 disables limiting
	BurstSize         int           // Rate limit burst (default: RequestsPerMinute)
}

// NewHTTPClient creates a pooled client suitable for sharing across
// translations. The client holds no per-request state.
func NewHTTPClient(cfg HTTPConfig) *http.Client {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = DefaultDialTimeout
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dial,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   dial,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	if cfg.RequestsPerMinute > 0 {
		transport = NewRateLimitedTransport(transport, RateLimitConfig{
			RequestsPerMinute: cfg.RequestsPerMinute,
			BurstSize:         cfg.BurstSize,
		})
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
