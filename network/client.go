// Package network builds the HTTP sessions service integrations communicate through.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client used by host-side requests that need no
// service session (version checks, script updates).
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with pool and timeout
// parameters sized for concurrent manifest and segment fetching.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
