// Package tavily implements marketway.InfoSearcher on the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/marketway"
)

// DefaultBaseURL is the Tavily API endpoint.
const DefaultBaseURL = "https://api.tavily.com"

// DefaultTimeout is the default timeout for search requests.
const DefaultTimeout = 15 * time.Second

// NoResults is returned when a search yields neither an answer nor results.
const NoResults = "No results found."

// Ensure Searcher implements marketway.InfoSearcher at compile time.
var _ marketway.InfoSearcher = (*Searcher)(nil)

// Searcher answers general questions through Tavily.
type Searcher struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client

	retryDelays []time.Duration
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTimeout sets the timeout for search requests.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithBaseURL points the searcher at a different API host.
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// NewSearcher creates a Searcher. An empty apiKey yields a searcher that
// reports EUNAVAILABLE for every search.
func NewSearcher(apiKey string, opts ...Option) *Searcher {
	s := &Searcher{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,

		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

type searchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search returns Tavily's answer for query, falling back to the result
// snippets when no answer is given.
func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	if s.apiKey == "" {
		return "", marketway.Errorf(marketway.EUNAVAILABLE, "online search is unavailable: API key missing")
	}
	if strings.TrimSpace(query) == "" {
		return "", marketway.Errorf(marketway.EINVALID, "search query required")
	}

	body, err := json.Marshal(searchRequest{
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		MaxResults:    5,
	})
	if err != nil {
		return "", err
	}

	var out searchResponse
	if err := withRetry(ctx, s.retryDelays, func(ctx context.Context) (bool, error) {
		return s.post(ctx, body, &out)
	}); err != nil {
		return "", err
	}

	if answer := strings.TrimSpace(out.Answer); answer != "" {
		return answer, nil
	}

	var snippets []string
	for _, r := range out.Results {
		if c := strings.TrimSpace(r.Content); c != "" {
			snippets = append(snippets, c)
		}
	}
	if len(snippets) == 0 {
		return NoResults, nil
	}
	return strings.Join(snippets, "\n\n"), nil
}

// post sends one search request and decodes the response into out.
// Transport failures, rate limiting and server errors are retryable.
func (s *Searcher) post(ctx context.Context, body []byte, out *searchResponse) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return ctx.Err() == nil, marketway.Errorf(marketway.EUNAVAILABLE, "online search failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, marketway.Errorf(marketway.EUNAVAILABLE, "online search failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode search response: %w", err)
	}
	return false, nil
}
