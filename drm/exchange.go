package drm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Exchange POSTs a license challenge to a service license endpoint and returns
// the normalized response bytes. Most license servers accept the challenge as
// the raw request body; services needing envelopes implement the hook directly.
func Exchange(ctx context.Context, client *http.Client, url string, challenge []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(challenge))
	if err != nil {
		return nil, fmt.Errorf("license request: %w", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("license request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("license response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("license server returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return NormalizePayload(body)
}
