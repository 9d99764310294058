package example

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/strand-dl/strand/credential"
)

// apiBase is a variable so tests can point the integration at a local server.
var apiBase = "https://api.example.tv/v2"

const apiVersion = "2.1"

const (
	assetMovie  = "movie"
	assetSeries = "series"
)

type searchResult struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Language string `json:"language"`
	Synopsis string `json:"synopsis"`
}

type episodeRecord struct {
	ID     string `json:"id"`
	Season int    `json:"season"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type manifestRecord struct {
	Tracks []manifestTrack `json:"tracks"`
}

type manifestTrack struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	URL      string `json:"url"`
	Codec    string `json:"codec"`
	Language string `json:"language"`
	Bitrate  int    `json:"bitrate"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	PSSH     string `json:"pssh"`
	KID      string `json:"kid"`
}

type chapterMarker struct {
	Name    string  `json:"name"`
	StartMs float64 `json:"start_ms"`
}

func (m chapterMarker) Start() time.Duration {
	return time.Duration(m.StartMs * float64(time.Millisecond))
}

type apiError struct {
	Message string `json:"message"`
}

// login exchanges a credential for a bearer token.
func (e *Example) login(ctx context.Context, c credential.Credential) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": c.Username,
		"password": c.Password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var response struct {
		Token string `json:"token"`
	}
	if err := e.do(req, &response); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if response.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}

	return response.Token, nil
}

func (e *Example) search(ctx context.Context, query string) ([]searchResult, error) {
	req, err := e.get(ctx, "/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var response struct {
		Results []searchResult `json:"results"`
	}
	if err := e.do(req, &response); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return response.Results, nil
}

func (e *Example) episodes(ctx context.Context, seriesID string) ([]episodeRecord, error) {
	req, err := e.get(ctx, "/titles/"+seriesID+"/episodes")
	if err != nil {
		return nil, err
	}

	var response struct {
		Episodes []episodeRecord `json:"episodes"`
	}
	if err := e.do(req, &response); err != nil {
		return nil, fmt.Errorf("episodes %s: %w", seriesID, err)
	}

	return response.Episodes, nil
}

func (e *Example) manifest(ctx context.Context, titleID string) (*manifestRecord, error) {
	req, err := e.get(ctx, "/titles/"+titleID+"/manifest?vcodec="+e.vcodec)
	if err != nil {
		return nil, err
	}

	var manifest manifestRecord
	if err := e.do(req, &manifest); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", titleID, err)
	}

	return &manifest, nil
}

func (e *Example) chapters(ctx context.Context, titleID string) ([]chapterMarker, error) {
	req, err := e.get(ctx, "/titles/"+titleID+"/chapters")
	if err != nil {
		return nil, err
	}

	var response struct {
		Chapters []chapterMarker `json:"chapters"`
	}
	if err := e.do(req, &response); err != nil {
		return nil, fmt.Errorf("chapters %s: %w", titleID, err)
	}

	return response.Chapters, nil
}

// certificate fetches the Widevine service certificate. The endpoint serves
// base64 text, returned untouched: payload decoding is the host's job.
func (e *Example) certificate(ctx context.Context) ([]byte, error) {
	req, err := e.get(ctx, "/drm/certificate")
	if err != nil {
		return nil, err
	}

	resp, err := e.Session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("certificate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("certificate: server returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("certificate: %w", err)
	}

	return bytes.TrimSpace(body), nil
}

func (e *Example) get(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+path, nil)
	if err != nil {
		return nil, err
	}

	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	return req, nil
}

// do executes a request and decodes the JSON response into target.
// Non-200 statuses are turned into errors carrying the API message.
func (e *Example) do(req *http.Request, target any) error {
	resp, err := e.Session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return json.Unmarshal(body, target)
}
