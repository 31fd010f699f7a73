package vocab

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads a JSON vocabulary list over HTTP.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Fetcher{client: client}
}

// Fetch downloads url and reads it as a JSON list of entries.
// The entries are not normalized.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Item, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("client.R().Get(%s) > %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	items, err := ReadJSON(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("ReadJSON(%s) > %w", url, err)
	}
	return items, nil
}
