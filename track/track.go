// Package track defines the domain models for media tracks and chapters returned by service integrations.
package track

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/strand-dl/strand/drm"
)

// Kind discriminates the media type of a track.
type Kind int

const (
	Video Kind = iota
	Audio
	Subtitle
)

func (k Kind) String() string {
	switch k {
	case Video:
		return "VID"
	case Audio:
		return "AUD"
	case Subtitle:
		return "SUB"
	default:
		return "???"
	}
}

// Track represents a single downloadable media stream.
type Track struct {
	// Service-scoped identifier. Derived from the URL when empty.
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	// Direct URL to the stream, segment manifest or file.
	URL string `json:"url"`
	// Codec label (e.g. "h264", "aac", "vtt").
	Codec string `json:"codec,omitempty"`
	// Language (BCP-47).
	Language string `json:"language,omitempty"`
	// Bandwidth in bits per second, zero when unknown.
	Bitrate int `json:"bitrate,omitempty"`
	// Video dimensions; zero for non-video tracks.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// Subtitle semantics.
	Forced  bool `json:"forced,omitempty"`
	Default bool `json:"default,omitempty"`
	// HTTP headers required to fetch the stream.
	Headers map[string]string `json:"headers,omitempty"`
	// Content protection; nil for clear tracks.
	DRM *drm.Widevine `json:"drm,omitempty"`

	// Service-private payload carried between hook calls.
	Data map[string]any `json:"-"`
}

// Key returns a stable identity for deduplication: the explicit ID when set,
// otherwise a digest of the URL.
func (t *Track) Key() string {
	if t.ID != "" {
		return t.ID
	}
	sum := sha256.Sum256([]byte(t.URL))
	return hex.EncodeToString(sum[:8])
}

// Protected reports whether the track requires a license to decrypt.
func (t *Track) Protected() bool {
	return t.DRM != nil
}

// String renders a compact one-line summary, e.g.
// "VID | h264 1920x1080 @ 8000 kb/s | en | drm".
func (t *Track) String() string {
	parts := []string{t.Kind.String()}

	var desc []string
	if t.Codec != "" {
		desc = append(desc, t.Codec)
	}
	if t.Width > 0 && t.Height > 0 {
		desc = append(desc, fmt.Sprintf("%dx%d", t.Width, t.Height))
	}
	if t.Bitrate > 0 {
		desc = append(desc, fmt.Sprintf("@ %d kb/s", t.Bitrate/1000))
	}
	if len(desc) > 0 {
		parts = append(parts, strings.Join(desc, " "))
	}

	if t.Language != "" {
		parts = append(parts, t.Language)
	}
	if t.Forced {
		parts = append(parts, "forced")
	}
	if t.Protected() {
		parts = append(parts, "drm")
	}

	return strings.Join(parts, " | ")
}
