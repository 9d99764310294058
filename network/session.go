package network

import (
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/viper"
	"github.com/strand-dl/strand/key"
	"github.com/strand-dl/strand/log"
)

// headerTransport injects common headers into every request of a session.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

// NewSession builds the per-service HTTP client every service receives:
// a fresh cookie jar, the configured User-Agent, the global proxy, and
// optionally a browser-impersonating TLS transport.
//
// Services needing more than this implement the session-customization hook.
func NewSession(jar http.CookieJar) *http.Client {
	var base http.RoundTripper

	if viper.GetBool(key.NetworkImpersonate) {
		base = Impersonated()
	} else {
		t := newTransport()
		if proxy := viper.GetString(key.NetworkProxy); proxy != "" {
			if u, err := url.Parse(proxy); err == nil {
				t.Proxy = http.ProxyURL(u)
			} else {
				log.Warnf("ignoring malformed proxy url: %v", err)
			}
		}
		base = t
	}

	headers := map[string]string{
		"User-Agent":      viper.GetString(key.NetworkUserAgent),
		"Accept-Language": "en-US,en;q=0.5",
	}

	return &http.Client{
		Timeout: time.Minute,
		Jar:     jar,
		Transport: &headerTransport{
			base:    base,
			headers: headers,
		},
	}
}
