package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matheuskafuri/eowatch/internal/cache"
	"golang.org/x/net/http2"
)

const (
	DefaultBaseURL   = "https://www.federalregister.gov/api/v1"
	DefaultUserAgent = "eowatch/1.0"
)

// listingFields is the projection requested from the listing endpoint.
var listingFields = []string{
	"document_number",
	"title",
	"executive_order_number",
	"signing_date",
	"publication_date",
	"html_url",
}

// Summary is one entry of the listing response.
type Summary struct {
	DocumentNumber       string     `json:"document_number"`
	Title                string     `json:"title"`
	ExecutiveOrderNumber flexString `json:"executive_order_number"`
	SigningDate          string     `json:"signing_date"`
	PublicationDate      string     `json:"publication_date"`
	HTMLURL              string     `json:"html_url"`
}

type listingResponse struct {
	Count   int       `json:"count"`
	Results []Summary `json:"results"`
}

type detailResponse struct {
	DocumentNumber       string     `json:"document_number"`
	Title                string     `json:"title"`
	ExecutiveOrderNumber flexString `json:"executive_order_number"`
	SigningDate          string     `json:"signing_date"`
	PublicationDate      string     `json:"publication_date"`
	Citation             string     `json:"citation"`
	Abstract             string     `json:"abstract"`
	HTMLURL              string     `json:"html_url"`
	PDFURL               string     `json:"pdf_url"`
	RawTextURL           string     `json:"raw_text_url"`
	BodyHTMLURL          string     `json:"body_html_url"`
}

// Config holds everything the Client needs. Zero values get defaults in New.
type Config struct {
	BaseURL   string
	UserAgent string
	PerPage   int
	President string
	// Lookback restricts the listing to orders signed within the window.
	// Zero disables the signing-date filter.
	Lookback time.Duration
	Timeout  time.Duration

	MaxAttempts int
	RetryDelay  time.Duration

	RateLimitThreshold int
	RateLimitPause     time.Duration

	HTTPClient *http.Client
	Sleep      func(ctx context.Context, d time.Duration) error
	Now        func() time.Time
	Log        io.Writer
}

// Client talks to the Federal Register documents API.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = io.Discard
	}

	client := cfg.HTTPClient
	if client == nil {
		var err error
		client, err = newHTTPClient(cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}
	return &Client{cfg: cfg, http: client}, nil
}

func newHTTPClient(timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("enabling http/2: %w", err)
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

// ListingURL builds the listing request URL for the current configuration.
func (c *Client) ListingURL() string {
	q := url.Values{}
	q.Set("conditions[type][]", "PRESDOCU")
	q.Set("conditions[presidential_document_type]", "executive_order")
	q.Set("conditions[correction]", "0")
	if c.cfg.President != "" {
		q.Set("conditions[president]", c.cfg.President)
	}
	if c.cfg.Lookback > 0 {
		now := c.cfg.Now()
		q.Set("conditions[signing_date][gte]", now.Add(-c.cfg.Lookback).Format("01/02/2006"))
		q.Set("conditions[signing_date][lte]", now.Format("01/02/2006"))
	}
	for _, f := range listingFields {
		q.Add("fields[]", f)
	}
	q.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	q.Set("order", "newest")
	return c.cfg.BaseURL + "/documents.json?" + q.Encode()
}

func (c *Client) detailURL(id string) string {
	return c.cfg.BaseURL + "/documents/" + url.PathEscape(id) + ".json"
}

// ListRecent fetches the newest executive orders, retrying up to
// MaxAttempts times with RetryDelay between attempts. Summaries without a
// document number are dropped; provider order is kept.
func (c *Client) ListRecent(ctx context.Context) ([]Summary, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		summaries, err := c.listOnce(ctx)
		if err == nil {
			return summaries, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		fmt.Fprintf(c.cfg.Log, "  [warn] Error querying API (attempt %d/%d): %v\n", attempt, c.cfg.MaxAttempts, err)

		if attempt < c.cfg.MaxAttempts {
			if err := c.cfg.Sleep(ctx, c.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}
	}
	fmt.Fprintln(c.cfg.Log, "  [warn] Failed after maximum retries")
	return nil, fmt.Errorf("listing executive orders after %d attempts: %w", c.cfg.MaxAttempts, lastErr)
}

func (c *Client) listOnce(ctx context.Context) ([]Summary, error) {
	var resp listingResponse
	if err := c.getJSON(ctx, c.ListingURL(), &resp); err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(resp.Results))
	for _, s := range resp.Results {
		if s.DocumentNumber == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// GetDetail fetches the full record for one document. It is not retried.
func (c *Client) GetDetail(ctx context.Context, id string) (cache.Item, error) {
	var d detailResponse
	if err := c.getJSON(ctx, c.detailURL(id), &d); err != nil {
		return cache.Item{}, err
	}

	item := cache.Item{
		DocumentNumber:       d.DocumentNumber,
		Title:                d.Title,
		ExecutiveOrderNumber: string(d.ExecutiveOrderNumber),
		SigningDate:          d.SigningDate,
		PublicationDate:      d.PublicationDate,
		Citation:             d.Citation,
		Abstract:             plainText(d.Abstract),
		HTMLURL:              d.HTMLURL,
		PDFURL:               d.PDFURL,
		TextURL:              d.RawTextURL,
		FullTextHTMLURL:      d.BodyHTMLURL,
	}
	if item.DocumentNumber == "" {
		item.DocumentNumber = id
	}
	return item, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if err := c.throttle(ctx, resp.Header); err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// throttle pauses when the provider reports few remaining calls.
func (c *Client) throttle(ctx context.Context, h http.Header) error {
	if c.cfg.RateLimitThreshold <= 0 {
		return nil
	}
	raw := h.Get("X-RateLimit-Remaining")
	if raw == "" {
		return nil
	}
	remaining, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || remaining >= c.cfg.RateLimitThreshold {
		return nil
	}
	fmt.Fprintf(c.cfg.Log, "  [warn] Only %d API calls remaining, pausing %s\n", remaining, c.cfg.RateLimitPause)
	return c.cfg.Sleep(ctx, c.cfg.RateLimitPause)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// flexString accepts a JSON string or number. The API reports executive
// order numbers as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
