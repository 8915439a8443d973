package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-cafe/candidate-portal/internal/candidate"
	"github.com/pkg/errors"
)

// FetchError is returned for any failure to obtain the candidate feed:
// transport errors, non-2xx replies and undecodable bodies. StatusCode is 0
// when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRecords performs a single GET against the candidate webhook. There is
// no retry.
func (c *Client) FetchRecords(ctx context.Context) ([]candidate.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: errors.Wrap(err, "unable to build request")}
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: errors.Wrap(err, "unable to call candidate webhook")}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &FetchError{URL: c.url, StatusCode: res.StatusCode, Err: fmt.Errorf("unexpected response %q", string(body))}
	}
	var records []candidate.RawRecord
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, &FetchError{URL: c.url, StatusCode: res.StatusCode, Err: errors.Wrap(err, "unable to parse candidate webhook response")}
	}
	return records, nil
}
