package http

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the outbound HTTP client shared by the sheet fetcher and the CV
// proxy. Retries are off: callers count failures instead of repeating them.
type Client struct {
	httpClient *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("User-Agent", "candidate-sync/1.0"),
	}
}

// Get issues a GET with the given query parameters. The response body is
// read fully; a non-2xx status is not an error.
func (c *Client) Get(ctx context.Context, url string, query map[string]string) (*resty.Response, error) {
	return c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
}

// GetStream issues a GET without buffering the body. The caller must close
// RawBody().
func (c *Client) GetStream(ctx context.Context, url string) (*resty.Response, error) {
	return c.httpClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
}
