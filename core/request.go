package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const UserAgent = "packlaunch/packlaunch"

// Fetcher opens remote resources. The caller closes the returned body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status for %s: %v", e.URL, e.Status)
}

// Permanent reports whether retrying the request cannot help.
func (e *StatusError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// HTTPFetcher fetches over HTTP with a fixed User-Agent.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := GetWithUA(ctx, f.client(), url, "*/*")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func GetWithUA(ctx context.Context, client *http.Client, url string, contentType string) (resp *http.Response, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", contentType)
	return client.Do(req)
}

// FetchJSON decodes the JSON document at url into out. Any failure is a
// ManifestFetchError.
func FetchJSON(ctx context.Context, fetcher Fetcher, url string, out interface{}) error {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return &ManifestFetchError{URL: url, Err: err}
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &ManifestFetchError{URL: url, Err: err}
	}
	return nil
}
