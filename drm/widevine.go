// Package drm defines the Widevine content-protection descriptors and license exchange helpers used by the host.
package drm

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Widevine describes the content protection applied to a single track.
type Widevine struct {
	// Base64-encoded PSSH init data, as found in the manifest.
	PSSH string `json:"pssh"`
	// Hex-encoded 16-byte key ID. Dashes are tolerated.
	KID string `json:"kid,omitempty"`
}

// Validate checks that the descriptor fields decode.
// A missing KID is allowed; many manifests only carry PSSH.
func (w *Widevine) Validate() error {
	if w.PSSH == "" {
		return fmt.Errorf("widevine: empty pssh")
	}
	if _, err := base64.StdEncoding.DecodeString(w.PSSH); err != nil {
		return fmt.Errorf("widevine: pssh is not valid base64: %w", err)
	}
	if w.KID != "" {
		if _, err := w.KIDBytes(); err != nil {
			return err
		}
	}
	return nil
}

// KIDBytes decodes the key ID into its 16-byte form.
func (w *Widevine) KIDBytes() ([]byte, error) {
	raw := strings.ReplaceAll(w.KID, "-", "")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("widevine: kid is not valid hex: %w", err)
	}
	if len(b) != 16 {
		return nil, fmt.Errorf("widevine: kid must be 16 bytes, got %d", len(b))
	}
	return b, nil
}

func (w *Widevine) String() string {
	if w.KID != "" {
		return "widevine kid=" + strings.ToLower(strings.ReplaceAll(w.KID, "-", ""))
	}
	return "widevine"
}
