package stealth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

const robotsTTL = time.Hour

// RobotsChecker fetches and caches robots.txt per origin.
type RobotsChecker struct {
	client *http.Client
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]robotsEntry
}

type robotsEntry struct {
	data    *robotstxt.RobotsData
	expires time.Time
}

// NewRobotsChecker uses client for robots.txt requests. The client must not
// route through the stealth Transport itself.
func NewRobotsChecker(client *http.Client) *RobotsChecker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RobotsChecker{
		client:  client,
		ttl:     robotsTTL,
		entries: make(map[string]robotsEntry),
	}
}

// Allowed reports whether agent may fetch u. An origin whose robots.txt
// cannot be fetched is treated as allowing everything.
func (r *RobotsChecker) Allowed(ctx context.Context, agent string, u *url.URL) bool {
	data, err := r.lookup(ctx, u.Scheme+"://"+u.Host)
	if err != nil {
		return true
	}
	return data.TestAgent(u.EscapedPath(), agent)
}

// CrawlDelay returns the Crawl-delay the origin sets for agent, or 0.
func (r *RobotsChecker) CrawlDelay(ctx context.Context, agent, origin string) time.Duration {
	data, err := r.lookup(ctx, origin)
	if err != nil {
		return 0
	}
	if g := data.FindGroup(agent); g != nil {
		return g.CrawlDelay
	}
	return 0
}

func (r *RobotsChecker) lookup(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	r.mu.Lock()
	e, ok := r.entries[origin]
	r.mu.Unlock()
	if ok && time.Now().Before(e.expires) {
		return e.data, nil
	}

	data, err := r.fetch(ctx, origin)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.entries[origin] = robotsEntry{data: data, expires: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return data, nil
}

func (r *RobotsChecker) fetch(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}
	// 4xx allows all and 5xx disallows all.
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}
