// Package stealth shapes outgoing requests so they look and pace like a
// browser: rotating fingerprints, robots.txt checks, rate limiting, jitter
// and proxy rotation, all behind one http.RoundTripper.
package stealth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lukman83/wb-scrap/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrDisallowed is returned for URLs robots.txt forbids.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Transport applies, in order: fingerprint, robots check and Crawl-delay,
// rate limit, jitter, then sends through the next proxy or Base. Nil
// stages are skipped.
type Transport struct {
	Base         http.RoundTripper
	Fingerprints *FingerprintPool
	Robots       *RobotsChecker
	Limiter      *rate.Limiter
	Jitter       *Jitter
	Proxies      *ProxyPool
	Log          *zap.Logger

	mu      sync.Mutex
	nextHit map[string]time.Time // earliest send time per origin
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	agent := req.Header.Get("User-Agent")
	if t.Fingerprints != nil {
		fp := t.Fingerprints.Next()
		agent = fp.UserAgent
		req.Header.Set("User-Agent", agent)
		for k, v := range fp.Hints {
			if _, ok := req.Header[k]; !ok {
				req.Header[k] = v
			}
		}
	}

	if t.Robots != nil {
		if !t.Robots.Allowed(ctx, agent, req.URL) {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, req.URL.Redacted())
		}
		origin := req.URL.Scheme + "://" + req.URL.Host
		if d := t.Robots.CrawlDelay(ctx, agent, origin); d > 0 {
			if err := t.pace(ctx, origin, d); err != nil {
				return nil, err
			}
		}
	}
	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	if t.Jitter != nil {
		if err := t.Jitter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	next := t.Base
	if t.Proxies != nil {
		var via string
		next, via = t.Proxies.Next()
		logger.OrNop(t.Log).Debug("proxied request", zap.String("host", req.URL.Host), zap.String("proxy", via))
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}

// pace spaces requests to origin at least d apart. Each caller reserves
// its slot under the lock and sleeps outside it.
func (t *Transport) pace(ctx context.Context, origin string, d time.Duration) error {
	t.mu.Lock()
	if t.nextHit == nil {
		t.nextHit = make(map[string]time.Time)
	}
	now := time.Now()
	at := t.nextHit[origin]
	if at.Before(now) {
		at = now
	}
	t.nextHit[origin] = at.Add(d)
	t.mu.Unlock()

	wait := at.Sub(now)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("crawl delay: %w", ctx.Err())
	}
}

// Options configures New.
type Options struct {
	DelayProfile  DelayProfile
	RespectRobots bool
	RatePerSecond float64 // <= 0 disables the limiter
	RateBurst     int
	ProxyFile     string
	Log           *zap.Logger
}

// New assembles a Transport over base. Only a bad proxy file is an error.
func New(base *http.Transport, opts Options) (*Transport, error) {
	t := &Transport{
		Fingerprints: NewFingerprintPool(),
		Jitter:       NewJitter(opts.DelayProfile),
		Log:          opts.Log,
	}
	if base != nil {
		t.Base = base
	}
	if opts.RespectRobots {
		t.Robots = NewRobotsChecker(nil)
	}
	if opts.RatePerSecond > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		t.Limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	if opts.ProxyFile != "" {
		proxies, err := LoadProxyFile(opts.ProxyFile)
		if err != nil {
			return nil, err
		}
		t.Proxies = NewProxyPool(proxies, base)
	}
	return t, nil
}
