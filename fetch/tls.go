package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// fingerprintTransport sends requests over a TLS handshake that mimics Chrome 120.
// HTTP/2 is tried first; servers that refuse it are retried over HTTP/1.1.
// Plain http:// URLs use the regular transport.
type fingerprintTransport struct{}

var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once

	h1Transport = &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLS(ctx, network, addr, []string{"http/1.1"})
		},
	}

	plainTransport = newTransport()
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		}
	})
	return h2Transport
}

func (fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return plainTransport.RoundTrip(req)
	}

	resp, err := getH2Transport().RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// GET requests have no body, so the request can be replayed as is.
	resp, err = h1Transport.RoundTrip(req.Clone(req.Context()))
	if err != nil {
		return nil, fmt.Errorf("fingerprinted request: %w", err)
	}
	return resp, nil
}

// dialTLS opens a connection with the Chrome 120 Client Hello.
// A nil protos keeps Chrome's own ALPN list (h2, http/1.1).
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
