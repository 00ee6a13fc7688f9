// Package googlecse provides a client for the Google Custom Search JSON API.
package googlecse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

	// The API serves at most 10 results per page and refuses start
	// indexes past 91.
	pageSize = 10
	maxStart = 91

	maxRetryAttempts = 3
	retryBaseDelay   = 500 * time.Millisecond
)

// Client performs paginated Custom Search queries.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Item, error)
}

// Item is a single search result.
type Item struct {
	Title   string  `json:"title"`
	Link    string  `json:"link"`
	Snippet string  `json:"snippet"`
	PageMap PageMap `json:"pagemap"`
}

// PageMap carries the structured page metadata attached to a result.
type PageMap struct {
	Metatags []map[string]string `json:"metatags"`
}

type searchResponse struct {
	Items   []Item `json:"items"`
	Queries struct {
		NextPage []struct {
			StartIndex int `json:"startIndex"`
		} `json:"nextPage"`
	} `json:"queries"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps the query rate in requests per second.
func WithRateLimit(qps float64) Option {
	return func(c *httpClient) {
		if qps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(qps), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	cx      string
	baseURL string
	limiter *rate.Limiter
	http    *http.Client
}

// NewClient creates a Custom Search client for the given API key and
// search engine id.
func NewClient(apiKey, cx string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search pages through results until maxResults items are collected, the
// API reports no next page, or the start index limit is reached.
func (c *httpClient) Search(ctx context.Context, query string, maxResults int) ([]Item, error) {
	if maxResults < 1 {
		maxResults = pageSize
	}

	var items []Item
	start := 1
	for len(items) < maxResults && start <= maxStart {
		if err := c.limiter.Wait(ctx); err != nil {
			return items, eris.Wrap(err, "googlecse: rate limit wait")
		}

		page, err := c.fetchPage(ctx, query, start)
		if err != nil {
			return items, err
		}

		items = append(items, page.Items...)
		if len(page.Queries.NextPage) == 0 || len(page.Items) == 0 {
			break
		}
		start = page.Queries.NextPage[0].StartIndex
	}

	if len(items) > maxResults {
		items = items[:maxResults]
	}
	return items, nil
}

func (c *httpClient) fetchPage(ctx context.Context, query string, start int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cx)
	params.Set("q", query)
	params.Set("num", fmt.Sprint(pageSize))
	params.Set("start", fmt.Sprint(start))
	requestURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, retryable, err := c.doRequest(ctx, requestURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *httpClient) doRequest(ctx context.Context, requestURL string) (*searchResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, eris.Wrap(err, "googlecse: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, eris.Wrap(err, "googlecse: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, eris.Wrap(err, "googlecse: read response")
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, eris.Errorf("googlecse: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, false, eris.Wrap(err, "googlecse: unmarshal response")
	}
	return &result, false, nil
}
