package drm

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// NormalizePayload accepts a certificate or license payload as returned by a
// service hook and yields raw bytes. Services hand back whatever their API
// produced, either raw protobuf bytes or a base64 string of them; decoding is
// the host's job, never the service's.
func NormalizePayload(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("drm: empty payload")
	}

	trimmed := bytes.TrimSpace(payload)

	// Only text can be base64. Serialized Widevine messages always carry
	// low tag bytes, so raw payloads never pass this check and are never
	// run through the decoder.
	if !printableASCII(trimmed) {
		return payload, nil
	}

	if decoded, err := base64.StdEncoding.DecodeString(string(trimmed)); err == nil {
		return decoded, nil
	}

	return payload, nil
}

func printableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// IsCommonCertificate reports whether a service certificate is the shared
// Google license-server certificate rather than a service-specific one.
// The common certificate carries its issuing host in ASCII.
func IsCommonCertificate(cert []byte) bool {
	return bytes.Contains(cert, []byte("license.google.com")) ||
		bytes.Contains(cert, []byte("license.widevine.com"))
}
