package linq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// FeedFetcher defines the interface for fetching the raw menu feed.
// This interface is implemented by *Client and can be used for testing.
type FeedFetcher interface {
	Fetch(ctx context.Context, start, end time.Time) (*MenuFeed, error)
}

// Ensure Client implements FeedFetcher at compile time.
var _ FeedFetcher = (*Client)(nil)

const (
	DefaultBaseURL   = "https://api.linqconnect.com/api"
	DefaultLookahead = 30 * 24 * time.Hour
	RequestTimeout   = 10 * time.Second

	familyMenuPath   = "FamilyMenu"
	queryDateLayout  = "1-2-2006"
	defaultUserAgent = "lunchtray/0.1"
)

// Client talks to the LinqConnect family menu API for one district building.
type Client struct {
	baseURL    *url.URL
	districtID string
	buildingID string
	http       *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
	userAgent  string
	now        func() time.Time
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Invalid values are ignored.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := parseBaseURL(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithHTTPClient swaps the underlying http.Client. Its timeout is forced to
// RequestTimeout when unset.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		if hc.Timeout <= 0 {
			hc.Timeout = RequestTimeout
		}
		c.http = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger.With().Str("component", "linq").Logger()
	}
}

// WithRateLimit caps outgoing requests per minute. Zero disables limiting.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given district and building identifiers.
func NewClient(districtID, buildingID string, opts ...Option) (*Client, error) {
	districtID = strings.TrimSpace(districtID)
	buildingID = strings.TrimSpace(buildingID)
	if districtID == "" || buildingID == "" {
		return nil, fmt.Errorf("district and building ids are required")
	}
	base, err := parseBaseURL(DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    base,
		districtID: districtID,
		buildingID: buildingID,
		http:       &http.Client{Timeout: RequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(10*time.Second), 3),
		log:        zerolog.Nop(),
		userAgent:  defaultUserAgent,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves the menu feed between start and end. A zero start means
// now; a zero end means start plus DefaultLookahead. All failures are
// returned as *APIError.
func (c *Client) Fetch(ctx context.Context, start, end time.Time) (*MenuFeed, error) {
	raw, err := c.FetchRaw(ctx, start, end)
	if err != nil {
		return nil, err
	}
	feed, err := DecodeFeed(raw)
	if err != nil {
		c.log.Error().Err(err).Msg("decode menu response")
		return nil, &APIError{Kind: KindDecode, Op: "decode response", Err: err}
	}
	return feed, nil
}

// FetchRaw is Fetch without decoding; the body is returned as received.
func (c *Client) FetchRaw(ctx context.Context, start, end time.Time) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if start.IsZero() {
		start = c.now()
	}
	if end.IsZero() {
		end = start.Add(DefaultLookahead)
	}

	values := url.Values{}
	values.Set("districtId", c.districtID)
	values.Set("buildingId", c.buildingID)
	values.Set("startDate", start.Format(queryDateLayout))
	values.Set("endDate", end.Format(queryDateLayout))
	rel := &url.URL{Path: familyMenuPath, RawQuery: values.Encode()}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Kind: KindTransport, Op: "rate limit", Err: err}
		}
	}

	body, err := c.doURL(ctx, rel)
	if err != nil {
		c.log.Error().Err(err).Msg("fetch menu data")
		return nil, err
	}
	c.log.Debug().
		Str("start", values.Get("startDate")).
		Str("end", values.Get("endDate")).
		Int("bytes", len(body)).
		Msg("fetched menu data")
	return body, nil
}

// Validate reports whether the district and building ids return a menu.
// It fetches a one-day window and maps any API error to false.
func (c *Client) Validate(ctx context.Context) bool {
	if c == nil {
		return false
	}
	_, err := c.Fetch(ctx, time.Time{}, c.now().Add(24*time.Hour))
	return err == nil
}

// MenuPlans returns the sorted, unique menu plan names offered by the
// building over the default window.
func (c *Client) MenuPlans(ctx context.Context) ([]string, error) {
	feed, err := c.Fetch(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	return PlanNames(feed), nil
}

// PlanNames extracts sorted unique non-empty plan names from a feed.
func PlanNames(feed *MenuFeed) []string {
	if feed == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, session := range feed.Sessions {
		for _, plan := range session.MenuPlans {
			name := strings.TrimSpace(string(plan.MenuPlanName))
			if name == "" {
				continue
			}
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPlanSelection returns the plans selected when the user has not
// chosen any: everything except Pre-K tracks.
func DefaultPlanSelection(plans []string) []string {
	var out []string
	for _, plan := range plans {
		if strings.Contains(strings.ToLower(plan), "pre-k") {
			continue
		}
		out = append(out, plan)
	}
	return out
}

func (c *Client) doURL(ctx context.Context, rel *url.URL) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{Kind: KindHTTP, Op: "get " + rel.Path, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: "read response", Err: err}
	}
	if !json.Valid(body) {
		return nil, &APIError{Kind: KindDecode, Op: "decode response", Err: fmt.Errorf("response is not valid json")}
	}
	return body, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	// ResolveReference replaces the last path segment unless the base ends in "/".
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
