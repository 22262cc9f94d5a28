// Package fetch implements the single synchronous network primitive available to extraction programs.
//
// A fetch is a whole-body HTTP GET. Only transport failures are errors; the
// response status is not inspected, programs decide what a page means.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/log"
	"github.com/spf13/viper"
)

// Fetcher retrieves the full body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options tune the HTTP client behind a Client.
type Options struct {
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// Fingerprint routes TLS through a Chrome-like uTLS handshake.
	Fingerprint bool
	// UserAgent is sent with every request.
	UserAgent string
}

// Client is the HTTP implementation of Fetcher. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
}

// New builds a Client from options.
func New(options Options) *Client {
	var transport http.RoundTripper = newTransport()
	if options.Fingerprint {
		transport = &fingerprintTransport{}
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = constant.UserAgent
	}

	return &Client{
		http: &http.Client{
			Timeout:   options.Timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

// FromConfig builds a Client from the fetch.* settings.
func FromConfig() *Client {
	return New(Options{
		Timeout:     time.Duration(viper.GetInt(key.FetchTimeout)) * time.Second,
		Fingerprint: viper.GetBool(key.FetchFingerprint),
		UserAgent:   viper.GetString(key.FetchUserAgent),
	})
}

// Fetch performs a blocking GET and returns the whole response body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	log.Debugf("Retrieval from %s requested.", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// newTransport clones the default transport with a pool sized for concurrent extractions.
// No response timeouts are set here; Options.Timeout is the only bound.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.IdleConnTimeout = 30 * time.Second
	return t
}
