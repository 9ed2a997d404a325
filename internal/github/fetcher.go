// internal/github/fetcher.go
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	apperrors "github-org-board/internal/errors"
)

// FetchOptions controls the retry and pagination policy of the Client.
type FetchOptions struct {
	// RetryCount is the number of retries for transient server errors.
	RetryCount int
	// BackoffFactor scales the exponential backoff between retries: the
	// n-th retry waits BackoffFactor << n.
	BackoffFactor time.Duration
	// RetryStatuses is the set of HTTP status codes that trigger a retry.
	RetryStatuses []int
	// Strict turns tolerated page failures into hard errors. The default
	// (lenient) policy logs the failure and ends that pagination run with
	// the pages gathered so far, so a single misconfigured repository
	// cannot abort an organisation-wide run.
	Strict bool
	// Limiter, if set, paces requests client-side.
	Limiter *rate.Limiter
}

// DefaultFetchOptions mirrors the retry policy the pipeline has always used:
// 5 retries, 100ms backoff factor, retry on 500/502/503/504, lenient pages.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		RetryCount:    5,
		BackoffFactor: 100 * time.Millisecond,
		RetryStatuses: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Client performs authenticated, retrying, rate-limit-aware pagination over
// GitHub REST collection endpoints.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	opts       FetchOptions
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token, userAgent string, logger *slog.Logger, opts FetchOptions) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{
		httpClient: tc,
		userAgent:  userAgent,
		logger:     logger,
		opts:       opts,
	}
}

// PaginatedGet fetches every page of a collection endpoint and returns the
// raw JSON pages in order.
//
// Only the first request carries the caller's query parameters; afterwards
// the server's Link rel="next" URL is followed verbatim, so page-number and
// cursor pagination behave identically. Pagination ends when a response
// carries no next link.
//
// A 401 response aborts immediately with *errors.AuthenticationError. A
// status in RetryStatuses is retried with exponential backoff; any other
// non-success status ends this pagination run early (lenient mode) or
// returns *errors.PageError (strict mode).
func (c *Client) PaginatedGet(ctx context.Context, rawURL string, params url.Values) ([]json.RawMessage, error) {
	next := rawURL
	if len(params) > 0 {
		next = rawURL + "?" + params.Encode()
	}

	var pages []json.RawMessage
	page := 1
	for next != "" {
		c.logger.Debug("Requesting page", "page", page, "url", next)

		res, err := c.getWithRetry(ctx, next)
		if err != nil {
			return nil, err
		}
		if !res.ok {
			// Tolerated failure: this collection contributes what we
			// have so far and the run moves on.
			return pages, nil
		}

		pages = append(pages, res.body)

		link, found := nextLink(res.header.Get("Link"))
		if !found {
			c.logger.Info("Pagination complete",
				"pages", page,
				"requests_remaining", res.header.Get("X-RateLimit-Remaining"))
			break
		}
		next = link
		page++
	}

	return pages, nil
}

// pageResult carries one fetched page. ok is false when the page was
// tolerated-and-skipped under the lenient policy.
type pageResult struct {
	body   json.RawMessage
	header http.Header
	ok     bool
}

func (c *Client) getWithRetry(ctx context.Context, url string) (pageResult, error) {
	for attempt := 0; ; attempt++ {
		if c.opts.Limiter != nil {
			if err := c.opts.Limiter.Wait(ctx); err != nil {
				return pageResult{}, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return pageResult{}, fmt.Errorf("failed to build request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.opts.RetryCount {
				if err := c.sleep(ctx, attempt); err != nil {
					return pageResult{}, err
				}
				continue
			}
			return pageResult{}, fmt.Errorf("request to %s failed: %w", url, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return pageResult{}, fmt.Errorf("failed to read response from %s: %w", url, readErr)
			}
			return pageResult{body: body, header: resp.Header, ok: true}, nil

		case resp.StatusCode == http.StatusUnauthorized:
			return pageResult{}, &apperrors.AuthenticationError{Endpoint: url}

		case c.retryable(resp.StatusCode) && attempt < c.opts.RetryCount:
			c.logger.Warn("Transient server error, retrying",
				"status", resp.StatusCode, "attempt", attempt+1, "url", url)
			if err := c.sleep(ctx, attempt); err != nil {
				return pageResult{}, err
			}

		default:
			// Retries exhausted or a status outside the retry list.
			if c.opts.Strict {
				return pageResult{}, &apperrors.PageError{URL: url, StatusCode: resp.StatusCode}
			}
			c.logger.Warn("Unable to fetch page, skipping",
				"status", resp.StatusCode, "url", url)
			return pageResult{ok: false}, nil
		}
	}
}

func (c *Client) retryable(status int) bool {
	for _, s := range c.opts.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// sleep waits out the exponential backoff for the given attempt, honouring
// context cancellation.
func (c *Client) sleep(ctx context.Context, attempt int) error {
	d := c.opts.BackoffFactor << uint(attempt)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// nextLink extracts the rel="next" URL from a Link header, if present.
// The URL is followed as-is: no page-number semantics are assumed, so opaque
// cursors work the same as numbered pages.
func nextLink(header string) (string, bool) {
	for _, link := range strings.Split(header, ",") {
		if !strings.Contains(link, `rel="next"`) {
			continue
		}
		if urlPart, _, ok := strings.Cut(link, ">"); ok {
			if u, ok := strings.CutPrefix(strings.TrimSpace(urlPart), "<"); ok {
				return u, true
			}
		}
	}
	return "", false
}
