// Package service defines the contract every content service integration implements,
// and the host facilities (session, cache, log) each integration receives.
package service

import (
	"context"
	"net/http"

	"github.com/samber/mo"
	"github.com/strand-dl/strand/credential"
	"github.com/strand-dl/strand/title"
	"github.com/strand-dl/strand/track"
)

// Service is the required surface of a content service integration.
//
// Hooks are invoked in order: titles, then per selected title tracks and
// chapters, then per protected track the two Widevine hooks. All hooks
// receive a context for cancellation; all network traffic goes through the
// session the host built for the service.
type Service interface {
	// Tag returns the cased service tag, e.g. "EXMP".
	Tag() string

	// GetTitles resolves the TITLE argument into the titles it denotes:
	// a movie listing or a series of episodes.
	GetTitles(ctx context.Context) (*title.Titles, error)

	// GetTracks lists the media tracks of one title.
	GetTracks(ctx context.Context, t title.Title) (*track.Tracks, error)

	// GetChapters lists the chapters of one title. Services without chapter
	// data return an empty, non-nil listing; returning nil is an error.
	GetChapters(ctx context.Context, t title.Title) (track.Chapters, error)

	// GetWidevineServiceCertificate returns the service certificate used to
	// privacy-encrypt license challenges. Services on the common Google
	// certificate may return nil; the CDM then requests it in-band.
	GetWidevineServiceCertificate(ctx context.Context, req *ChallengeRequest) ([]byte, error)

	// GetWidevineLicense exchanges a license challenge for license bytes.
	// Raw and base64 payloads are both accepted; the host normalizes.
	GetWidevineLicense(ctx context.Context, req *ChallengeRequest) ([]byte, error)
}

// ChallengeRequest carries one Widevine exchange: the opaque challenge plus
// the title and track it licenses.
type ChallengeRequest struct {
	Challenge []byte
	Title     title.Title
	Track     *track.Track
}

// Authenticator is implemented by services requiring authentication.
// The hook receives whatever the host could source: the service's cookie
// file and its configured credential, either of which may be absent.
// Missing-but-required auth material yields an *EnvironmentError.
type Authenticator interface {
	Authenticate(ctx context.Context, cookies []*http.Cookie, cred mo.Option[credential.Credential]) error
}

// SessionConfigurer is implemented by services needing a session beyond the
// host default (extra headers, different redirect policy, no proxy).
// The hook receives the host-built session and returns the one to use.
type SessionConfigurer interface {
	ConfigureSession(session *http.Client) *http.Client
}
