package steamdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"steamer/internal/config"
	"steamer/internal/logging"
	"steamer/internal/resolver"
)

// pollInterval paces re-fetches while waiting out challenge pages and
// late-appearing manifest tables.
const pollInterval = time.Second

// manifestHeadingText labels the history section on a depot page.
const manifestHeadingText = "Previously seen manifests"

// manifestIDPattern matches a manifest id inside the history table cell.
// Manifest ids are long decimal numbers; ten digits filters out row counts
// and dates sharing the cell.
var manifestIDPattern = regexp.MustCompile(`\b\d{10,}\b`)

// Client fetches depot manifest history pages and extracts the newest
// manifest id. It implements resolver.Resolver.
type Client struct {
	depotURL      func(int64) string
	userAgent     string
	cookies       map[string]string
	challengeWait time.Duration
	tableWait     time.Duration
	httpClient    *http.Client
	logger        *slog.Logger
	sleeper       func(time.Duration)
}

var _ resolver.Resolver = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for challenge and retry visibility.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "steamdb")
		}
	}
}

// WithSleeper overrides how poll waits are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// New creates a client from the steamdb section of cfg.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if strings.TrimSpace(cfg.SteamDB.BaseURL) == "" {
		return nil, errors.New("steamdb base url required")
	}
	userAgent := strings.TrimSpace(cfg.SteamDB.UserAgent)
	if userAgent == "" {
		return nil, errors.New("steamdb user agent required")
	}
	client := &Client{
		depotURL:      cfg.DepotURL,
		userAgent:     userAgent,
		cookies:       cfg.SteamDB.Cookies,
		challengeWait: time.Duration(cfg.SteamDB.ChallengeWait) * time.Second,
		tableWait:     time.Duration(cfg.SteamDB.TableWait) * time.Second,
		httpClient:    &http.Client{Timeout: time.Duration(cfg.SteamDB.PageLoadTimeout) * time.Second},
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// LatestManifest fetches the depot's history page and returns the newest
// manifest id listed there. resolver.ErrNoData reports a page with no
// usable history.
func (c *Client) LatestManifest(ctx context.Context, depot int64) (string, error) {
	if depot <= 0 {
		return "", fmt.Errorf("depot id must be positive, got %d", depot)
	}
	pageURL := c.depotURL(depot)

	current, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}
	current, err = c.awaitChallenge(ctx, pageURL, current)
	if err != nil {
		return "", err
	}
	current, err = c.awaitHistoryTable(ctx, pageURL, current)
	if err != nil {
		return "", err
	}

	id := latestManifestID(current.doc)
	if id == "" {
		return "", resolver.ErrNoData
	}
	return id, nil
}

// page pairs the parsed document with the lowercased raw source. Challenge
// markers hide in script and attribute text that element traversal misses,
// so detection needs the raw bytes.
type page struct {
	doc *html.Node
	raw string
}

func (p *page) challenged() bool {
	if strings.Contains(p.raw, "checking your browser") || strings.Contains(p.raw, "cf-chl") {
		return true
	}
	title := strings.ToLower(textContent(findElement(p.doc, "title")))
	return strings.Contains(title, "just a moment")
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en")
	for name, value := range c.cookies {
		if value == "" {
			continue
		}
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	// Challenge interstitials arrive with 403 or 503 status, so the code is
	// not trusted to signal failure. The body decides.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response (latency=%v): %w", latency, err)
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &page{doc: doc, raw: strings.ToLower(string(body))}, nil
}

// awaitChallenge re-polls while the response looks like an anti-bot
// interstitial, giving up once the challenge wait window is spent. The last
// page is returned as-is; a persistent challenge then surfaces as ErrNoData
// downstream.
func (c *Client) awaitChallenge(ctx context.Context, pageURL string, current *page) (*page, error) {
	for polls := pollCount(c.challengeWait); polls > 0 && current.challenged(); polls-- {
		c.logger.Debug("waiting out challenge page", logging.String("url", pageURL))
		if err := c.sleep(ctx, pollInterval); err != nil {
			return nil, err
		}
		next, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// awaitHistoryTable re-polls while the manifest heading is absent, bounded
// by the table wait. Absence after the window is not an error; the caller
// reports no data.
func (c *Client) awaitHistoryTable(ctx context.Context, pageURL string, current *page) (*page, error) {
	for polls := pollCount(c.tableWait); polls > 0 && findManifestHeading(current.doc) == nil; polls-- {
		if err := c.sleep(ctx, pollInterval); err != nil {
			return nil, err
		}
		next, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// pollCount converts a wait window into a number of poll attempts.
func pollCount(window time.Duration) int {
	if window <= 0 {
		return 0
	}
	return int(window / pollInterval)
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
