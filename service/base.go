package service

import (
	"context"
	"net/http"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/strand-dl/strand/cookie"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/internal/cache"
	"github.com/strand-dl/strand/log"
	"github.com/strand-dl/strand/network"
)

// Base carries the host facilities every service integration receives.
// Service structs embed it and get Tag, a default Authenticate, and the
// session/cache/log accessors for free.
type Base struct {
	// ServiceTag is the cased tag, e.g. "EXMP".
	ServiceTag string

	// Session is the service's HTTP client: cookie jar, common headers,
	// proxy and (optionally) impersonated TLS already applied.
	Session *http.Client

	// Log is a logrus entry scoped to the service tag.
	Log *logrus.Entry

	// Credential is the credential the host sourced for the service,
	// populated during Authenticate.
	Credential mo.Option[credential.Credential]
}

// NewBase assembles the facilities for one service tag.
func NewBase(tag string) *Base {
	return &Base{
		ServiceTag: tag,
		Session:    network.NewSession(cookie.NewJar()),
		Log:        log.Tagged(tag),
	}
}

func (b *Base) Tag() string {
	return b.ServiceTag
}

// HTTPSession exposes the session to the host.
func (b *Base) HTTPSession() *http.Client {
	return b.Session
}

// SetSession replaces the session, used after the customization hook ran.
func (b *Base) SetSession(session *http.Client) {
	b.Session = session
}

// ApplySessionCustomization invokes the session hook of services that
// implement one, swapping the returned client in for the host-built session.
func ApplySessionCustomization(s Service) {
	configurer, ok := s.(SessionConfigurer)
	if !ok {
		return
	}

	holder, ok := s.(interface {
		HTTPSession() *http.Client
		SetSession(*http.Client)
	})
	if !ok {
		return
	}

	if session := configurer.ConfigureSession(holder.HTTPSession()); session != nil {
		holder.SetSession(session)
	}
}

// Authenticate is the default authentication hook: cookies are installed
// into the session jar and the credential is retained for the service's own
// hooks. Services embedding Base call this first from their override.
func (b *Base) Authenticate(_ context.Context, cookies []*http.Cookie, cred mo.Option[credential.Credential]) error {
	if len(cookies) > 0 && b.Session != nil && b.Session.Jar != nil {
		cookie.Install(b.Session.Jar, cookies)
	}
	b.Credential = cred
	return nil
}

// RequireCredential guards hooks that cannot proceed without a credential.
func (b *Base) RequireCredential() (credential.Credential, error) {
	if c, ok := b.Credential.Get(); ok {
		return c, nil
	}
	return credential.Credential{}, &EnvironmentError{
		Tag:     b.ServiceTag,
		Missing: "credentials",
		Remedy:  "run \"strand auth login " + b.ServiceTag + "\" or set credentials." + b.ServiceTag,
	}
}

// RequireCookies guards authentication hooks that cannot proceed without a
// cookie file.
func (b *Base) RequireCookies(cookies []*http.Cookie) error {
	if len(cookies) > 0 {
		return nil
	}
	return &EnvironmentError{
		Tag:     b.ServiceTag,
		Missing: "cookies",
		Remedy:  "export a Netscape cookies file to the cookies directory as " + b.ServiceTag + ".txt",
	}
}

// CacheKey scopes a cache identifier to the service and, when authenticated,
// to the credential. Tokens cached for one account never leak to another.
func (b *Base) CacheKey(value string) string {
	scope := b.ServiceTag
	if c, ok := b.Credential.Get(); ok {
		scope += ":" + c.ID()
	}
	return cache.GenerateKey(value, scope)
}
