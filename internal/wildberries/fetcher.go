package wildberries

import (
	"context"
	"net/http"

	"github.com/lukman83/wb-scrap/internal/httputil"
)

// Fetcher retrieves the raw body of a card API URL.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// APIFetcher calls the card API directly over HTTP.
type APIFetcher struct {
	client  *http.Client
	retries int
}

// NewAPIFetcher uses client for requests. retries is the number of extra
// attempts on transport errors and 5xx; 0 sends each request once.
func NewAPIFetcher(client *http.Client, retries int) *APIFetcher {
	if client == nil {
		client = httputil.NewHTTPClient(nil, 0)
	}
	return &APIFetcher{client: client, retries: retries}
}

func (a *APIFetcher) Name() string { return "api" }

func (a *APIFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httputil.Apply(req, httputil.CatalogHeaders())

	resp, err := httputil.DoWithRetry(a.client, req, a.retries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}
	if !httputil.IsSuccess(resp) {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
