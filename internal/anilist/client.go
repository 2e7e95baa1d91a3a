package anilist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"mangasync/internal/logging"
)

const maxResponseBytes = 4 << 20

// Client talks to the AniList GraphQL endpoint.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, typically for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http.HTTPClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "anilist")
		}
	}
}

// New creates an AniList client. Transient network failures are retried a
// couple of times; HTTP statuses (including 429) are never retried here so
// the sync engine sees every rate limit signal.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("anilist base url required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.HTTPClient = &http.Client{Timeout: timeout}
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		// Retry only transport-level failures. Every HTTP status, 429
		// included, is surfaced to the caller untouched.
		return err != nil, nil
	}

	client := &Client{
		baseURL: baseURL,
		http:    rc,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Request posts a GraphQL query and returns the response's data object.
// GraphQL errors, rate limits, and HTTP failures come back as *RequestError.
func (c *Client) Request(ctx context.Context, query string, variables map[string]any, token string) (gjson.Result, error) {
	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestStart := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}
	parsed := gjson.ParseBytes(raw)

	c.logger.Debug("graphql request completed",
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency))

	if reqErr := classifyResponse(resp, parsed); reqErr != nil {
		return gjson.Result{}, reqErr
	}
	return parsed.Get("data"), nil
}

func classifyResponse(resp *http.Response, parsed gjson.Result) *RequestError {
	var messages []string
	for _, e := range parsed.Get("errors").Array() {
		if msg := e.Get("message").String(); msg != "" {
			messages = append(messages, msg)
		}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := retryAfterFromHeader(resp)
		if retryAfter == 0 {
			for _, msg := range messages {
				if d, ok := parseRateLimitMessage(msg); ok {
					retryAfter = d
					break
				}
			}
		}
		return &RequestError{Status: resp.StatusCode, Messages: messages, RateLimited: true, RetryAfter: retryAfter}
	}

	for _, msg := range messages {
		if d, ok := parseRateLimitMessage(msg); ok {
			return &RequestError{Status: resp.StatusCode, Messages: messages, RateLimited: true, RetryAfter: d}
		}
	}

	if len(messages) > 0 {
		return &RequestError{Status: resp.StatusCode, Messages: messages}
	}
	if resp.StatusCode != http.StatusOK {
		return &RequestError{Status: resp.StatusCode}
	}
	return nil
}

func retryAfterFromHeader(resp *http.Response) time.Duration {
	value := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// SearchManga queries the catalog for manga matching the given title.
func (c *Client) SearchManga(ctx context.Context, title string, page int, token string) ([]Media, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("search title must not be empty")
	}
	if page <= 0 {
		page = 1
	}

	data, err := c.Request(ctx, searchMangaQuery, map[string]any{"search": title, "page": page}, token)
	if err != nil {
		return nil, err
	}

	var results []Media
	for _, value := range data.Get("Page.media").Array() {
		results = append(results, mediaFromJSON(value))
	}
	return results, nil
}

// FetchViewerList returns the authenticated user's manga list keyed by
// media id, for diffing sync updates against known remote state.
func (c *Client) FetchViewerList(ctx context.Context, token string) (map[int]ListEntry, error) {
	if token == "" {
		return nil, errors.New("viewer list requires an authentication token")
	}

	viewer, err := c.Request(ctx, viewerMangaListQuery, nil, token)
	if err != nil {
		return nil, fmt.Errorf("fetch viewer: %w", err)
	}
	userID := int(viewer.Get("Viewer.id").Int())
	if userID == 0 {
		return nil, errors.New("viewer id missing from response")
	}

	data, err := c.Request(ctx, mediaListCollectionQuery, map[string]any{"userId": userID}, token)
	if err != nil {
		return nil, fmt.Errorf("fetch list collection: %w", err)
	}

	entries := make(map[int]ListEntry)
	for _, list := range data.Get("MediaListCollection.lists").Array() {
		for _, raw := range list.Get("entries").Array() {
			entry := listEntryFromJSON(raw)
			if entry.MediaID != 0 {
				entries[entry.MediaID] = entry
			}
		}
	}
	return entries, nil
}
