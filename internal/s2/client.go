// Package s2 is a client for the Semantic Scholar Academic Graph and
// Recommendations APIs. Every operation validates its arguments before any
// network call and reports failures as *APIError.
package s2

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL            = "https://api.semanticscholar.org/graph/v1"
	DefaultRecommendationsURL = "https://api.semanticscholar.org/recommendations/v1"
	DefaultTimeout            = 30 * time.Second
	DefaultUserAgent          = "scholar-mcp/1.0"

	// maxErrorBody bounds how much of an error response is read for its
	// message.
	maxErrorBody = 64 << 10
	// maxErrorText caps a raw error body quoted in a message.
	maxErrorText = 200
)

// Limits bounds the sizes callers may request. The defaults mirror the
// limits enforced by the remote API.
type Limits struct {
	MaxSearchLimit         int
	MaxCitationLimit       int
	MaxSnippetLimit        int
	MaxRecommendationLimit int
	MaxAuthorPapersLimit   int
	MaxAutocomplete        int
	MaxPaperBatch          int
	MaxAuthorBatch         int
}

// DefaultLimits returns the remote API's documented bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxSearchLimit:         100,
		MaxCitationLimit:       1000,
		MaxSnippetLimit:        1000,
		MaxRecommendationLimit: 500,
		MaxAuthorPapersLimit:   1000,
		MaxAutocomplete:        10,
		MaxPaperBatch:          500,
		MaxAuthorBatch:         1000,
	}
}

// Options configures a Client.
type Options struct {
	BaseURL            string
	RecommendationsURL string
	APIKey             string
	Timeout            time.Duration // Per call; zero means DefaultTimeout
	RateLimit          float64       // Requests per second; zero disables local pacing
	RateBurst          int
	UserAgent          string
	HTTPClient         *http.Client // Optional; a client without its own timeout is used by default
	Limits             Limits
}

// DefaultOptions returns options targeting the public API.
func DefaultOptions() Options {
	return Options{
		BaseURL:            DefaultBaseURL,
		RecommendationsURL: DefaultRecommendationsURL,
		Timeout:            DefaultTimeout,
		RateLimit:          DefaultRequestsPerSecond,
		RateBurst:          DefaultBurst,
		UserAgent:          DefaultUserAgent,
		Limits:             DefaultLimits(),
	}
}

// Client issues requests against the Semantic Scholar APIs. It is safe for
// concurrent use.
type Client struct {
	baseURL            string
	recommendationsURL string
	apiKey             string
	timeout            time.Duration
	userAgent          string
	limits             Limits
	httpClient         *http.Client
	limiter            *rate.Limiter
	log                logger.Logger
}

// NewClient creates a client. Zero-valued options fall back to their defaults.
func NewClient(opts Options, log logger.Logger) *Client {
	defaults := DefaultOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.RecommendationsURL == "" {
		opts.RecommendationsURL = defaults.RecommendationsURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	opts.Limits = fillLimits(opts.Limits, defaults.Limits)
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Client{
		baseURL:            strings.TrimRight(opts.BaseURL, "/"),
		recommendationsURL: strings.TrimRight(opts.RecommendationsURL, "/"),
		apiKey:             opts.APIKey,
		timeout:            opts.Timeout,
		userAgent:          opts.UserAgent,
		limits:             opts.Limits,
		httpClient:         opts.HTTPClient,
		limiter:            newLimiter(opts.RateLimit, opts.RateBurst),
		log:                log,
	}
}

// Limits returns the bounds the client enforces.
func (c *Client) Limits() Limits {
	return c.limits
}

func fillLimits(l, defaults Limits) Limits {
	pick := func(v, d int) int {
		if v <= 0 {
			return d
		}
		return v
	}
	return Limits{
		MaxSearchLimit:         pick(l.MaxSearchLimit, defaults.MaxSearchLimit),
		MaxCitationLimit:       pick(l.MaxCitationLimit, defaults.MaxCitationLimit),
		MaxSnippetLimit:        pick(l.MaxSnippetLimit, defaults.MaxSnippetLimit),
		MaxRecommendationLimit: pick(l.MaxRecommendationLimit, defaults.MaxRecommendationLimit),
		MaxAuthorPapersLimit:   pick(l.MaxAuthorPapersLimit, defaults.MaxAuthorPapersLimit),
		MaxAutocomplete:        pick(l.MaxAutocomplete, defaults.MaxAutocomplete),
		MaxPaperBatch:          pick(l.MaxPaperBatch, defaults.MaxPaperBatch),
		MaxAuthorBatch:         pick(l.MaxAuthorBatch, defaults.MaxAuthorBatch),
	}
}

// request describes one call to the remote API.
type request struct {
	method string
	base   string // c.baseURL or c.recommendationsURL
	path   string // Already escaped
	params url.Values
	body   any // JSON encoded when non-nil
}

// do executes req under the per-call timeout and decodes a 2xx response into
// out. Every failure is returned as *APIError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := waitForSlot(ctx, c.limiter); err != nil {
		c.log.Warn("s2 %s %s: %v", req.method, req.path, err)
		return err
	}

	endpoint := req.base + req.path
	if len(req.params) > 0 {
		endpoint += "?" + req.params.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return invalidArgument("failed to encode request body: %v", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return invalidArgument("failed to build request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		apiErr := transportError(ctx, err)
		c.log.Warn("s2 %s %s failed after %s: %v", req.method, req.path, time.Since(start), apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	c.log.Debug("s2 %s %s -> %d (%s)", req.method, req.path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp, time.Now())
		c.log.Warn("s2 %s %s: %v", req.method, req.path, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := contextError(ctx.Err()); ctxErr != nil {
			return ctxErr
		}
		return upstreamFailure(err, "failed to decode %s response", req.path)
	}
	return nil
}

// transportError classifies a failure to obtain any response.
func transportError(ctx context.Context, err error) *APIError {
	if ctxErr := contextError(ctx.Err()); ctxErr != nil {
		ctxErr.Err = err
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "no response within the request timeout", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "no response within the request timeout", Err: err}
	}
	return upstreamFailure(err, "request failed: %v", err)
}

// statusError maps a non-2xx response to the error taxonomy.
func statusError(resp *http.Response, now time.Time) *APIError {
	msg := errorMessage(resp.Body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	apiErr := &APIError{Message: msg, StatusCode: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusBadRequest:
		apiErr.Kind = KindInvalidArgument
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimited
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), now)
	default:
		apiErr.Kind = KindUpstreamFailure
	}
	return apiErr
}

// errorMessage extracts the message of an {"error": ...} or
// {"message": ...} body, falling back to the raw text.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > maxErrorText {
		cut := maxErrorText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}

// checkLimit validates a requested page size against [1, max].
func checkLimit(name string, limit, max int) error {
	if limit < 1 || limit > max {
		return invalidArgument("%s must be between 1 and %d, got %d", name, max, limit)
	}
	return nil
}

func checkOffset(offset int) error {
	if offset < 0 {
		return invalidArgument("offset must not be negative, got %d", offset)
	}
	return nil
}

// pathID trims and escapes an identifier for use in a path. Slashes inside
// prefixed ids such as DOI:10.1/x are kept, as the API expects them verbatim.
func pathID(kind, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalidArgument("%s must not be empty", kind)
	}
	segments := strings.Split(id, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/"), nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
