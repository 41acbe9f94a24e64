package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpclient "candidate-sync/pkg/http"
)

// ErrSourceUnavailable marks a tab whose CSV export could not be fetched.
var ErrSourceUnavailable = errors.New("sheet source unavailable")

// Fetcher downloads one tab of a spreadsheet as CSV text.
type Fetcher struct {
	client   *httpclient.Client
	sheetURL string
	timeout  time.Duration
}

// NewFetcher builds a fetcher for the gviz CSV endpoint at sheetURL, e.g.
// https://docs.google.com/spreadsheets/d/{id}/gviz/tq.
func NewFetcher(client *httpclient.Client, sheetURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{client: client, sheetURL: sheetURL, timeout: timeout}
}

// FetchTab returns the CSV body of the named tab. Anything but a 200 is
// reported as ErrSourceUnavailable; there are no retries.
func (f *Fetcher) FetchTab(ctx context.Context, sheetName string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := f.client.Get(ctx, f.sheetURL, map[string]string{
		"tqx":   "out:csv",
		"sheet": sheetName,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, sheetName, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %s: status %d", ErrSourceUnavailable, sheetName, resp.StatusCode())
	}
	return resp.String(), nil
}
