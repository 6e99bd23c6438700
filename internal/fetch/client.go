package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mokhberai/mokhber/internal/logging"
	"github.com/mokhberai/mokhber/internal/model"
)

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a URL.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Result is a fetched response body plus the URL it finally resolved to
// after redirects.
type Result struct {
	Body     []byte
	FinalURL string
	Cached   bool
}

// Client is the shared outbound HTTP client. Every feed and page fetch in a
// run goes through one Client so that robots.txt decisions, per-domain rate
// limits and the response cache are enforced uniformly.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *Limiter
	robots     *RobotsChecker // nil when robots checking is disabled
	cache      *gocache.Cache // nil when caching is disabled
	cacheTTL   time.Duration
}

// NewClient builds a Client from configuration.
func NewClient(cfg *model.Config) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   NewLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst),
		cacheTTL:  cfg.Cache.TTL,
	}
	if cfg.Robots.Enabled {
		c.robots = NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	if cfg.Cache.Enabled {
		c.cache = gocache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return c
}

// Get fetches the URL, honoring robots.txt, per-domain rate limits and the
// response cache. Repeated fetches of the same URL within a run are served
// from memory.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	key := cacheKey(rawURL)
	if c.cache != nil {
		if v, found := c.cache.Get(key); found {
			cached := v.(*Result)
			return &Result{Body: cached.Body, FinalURL: cached.FinalURL, Cached: true}, nil
		}
	}

	var crawlDelay time.Duration
	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
		}
		crawlDelay = delay
	}

	if err := c.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	res := &Result{Body: body, FinalURL: resp.Request.URL.String()}
	if c.cache != nil {
		c.cache.Set(key, res, c.cacheTTL)
	}
	logging.Debug("fetched", "url", rawURL, "bytes", len(body))

	return res, nil
}

func cacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "mokhber:v1:" + hex.EncodeToString(hash[:])
}

// Subject derives a human-readable subject from the last path segment of a
// URL, de-slugified. Used as a title fallback when a page offers none.
func Subject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")

	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	return last
}
