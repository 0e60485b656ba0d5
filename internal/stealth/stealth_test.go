package stealth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFingerprintPoolRotates(t *testing.T) {
	p := NewFingerprintPool(
		Fingerprint{UserAgent: "a"},
		Fingerprint{UserAgent: "b"},
	)
	got := []string{p.Next().UserAgent, p.Next().UserAgent, p.Next().UserAgent}
	if got[0] != "a" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("unexpected rotation %v", got)
	}
	if NewFingerprintPool().Len() == 0 {
		t.Fatalf("default pool is empty")
	}
}

func TestParseDelayProfile(t *testing.T) {
	if p, err := ParseDelayProfile(""); err != nil || p != ProfileNormal {
		t.Fatalf("empty profile: %v %v", p, err)
	}
	if _, err := ParseDelayProfile("reckless"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
	if NewJitter(ProfileOff) != nil {
		t.Fatalf("off profile should disable jitter")
	}
	j := &Jitter{Min: 5 * time.Millisecond, Max: 10 * time.Millisecond}
	for i := 0; i < 50; i++ {
		if d := j.Draw(); d < j.Min || d >= j.Max {
			t.Fatalf("draw %v outside [%v, %v)", d, j.Min, j.Max)
		}
	}
}

func TestJitterHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := &Jitter{Min: time.Hour, Max: 2 * time.Hour}
	if err := j.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadProxyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.txt")
	content := "# pool\n\n10.0.0.1:3128\nsocks5://user:pw@10.0.0.2:1080\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	urls, err := LoadProxyFile(path)
	if err != nil {
		t.Fatalf("LoadProxyFile: %v", err)
	}
	if len(urls) != 2 || urls[0].Scheme != "http" || urls[1].Scheme != "socks5" {
		t.Fatalf("unexpected proxies %v", urls)
	}

	pool := NewProxyPool(urls, nil)
	_, first := pool.Next()
	_, second := pool.Next()
	_, third := pool.Next()
	if first == second || first != third {
		t.Fatalf("unexpected rotation %s %s %s", first, second, third)
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	_ = os.WriteFile(bad, []byte("ftp://nope:21\n"), 0o600)
	if _, err := LoadProxyFile(bad); err == nil {
		t.Fatalf("expected error for ftp proxy")
	}
	if NewProxyPool(nil, nil) != nil {
		t.Fatalf("empty pool should be nil")
	}
}

func TestRobotsChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\nCrawl-delay: 2\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rc := NewRobotsChecker(srv.Client())
	ctx := context.Background()
	open, _ := url.Parse(srv.URL + "/cards/v4/detail")
	closed, _ := url.Parse(srv.URL + "/private/x")
	if !rc.Allowed(ctx, "bot", open) {
		t.Fatalf("expected %s allowed", open)
	}
	if rc.Allowed(ctx, "bot", closed) {
		t.Fatalf("expected %s disallowed", closed)
	}
	if d := rc.CrawlDelay(ctx, "bot", srv.URL); d != 2*time.Second {
		t.Fatalf("crawl delay = %v", d)
	}
}

func TestTransportPipeline(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /blocked\n"))
			return
		}
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := &Transport{
		Base:         http.DefaultTransport,
		Fingerprints: NewFingerprintPool(Fingerprint{UserAgent: "test-agent"}),
		Robots:       NewRobotsChecker(srv.Client()),
	}
	client := &http.Client{Transport: tr}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ok", nil)
	req.Header.Set("Accept-Language", "ru-RU")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if gotUA != "test-agent" || gotLang != "ru-RU" {
		t.Fatalf("headers not applied: ua=%q lang=%q", gotUA, gotLang)
	}
	if req.Header.Get("User-Agent") != "" {
		t.Fatalf("caller request must not be mutated")
	}

	_, err = client.Get(srv.URL + "/blocked")
	if !errors.Is(err, ErrDisallowed) {
		t.Fatalf("expected ErrDisallowed, got %v", err)
	}
}

func TestNewRejectsBadProxyFile(t *testing.T) {
	if _, err := New(nil, Options{ProxyFile: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing proxy file")
	}
	tr, err := New(nil, Options{DelayProfile: ProfileOff, RatePerSecond: 5})
	if err != nil || tr.Jitter != nil || tr.Limiter == nil || tr.Robots != nil {
		t.Fatalf("unexpected transport %+v %v", tr, err)
	}
}

func TestTransportHonoursCrawlDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nCrawl-delay: 0.2\n"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Transport{
		Base:   http.DefaultTransport,
		Robots: NewRobotsChecker(srv.Client()),
	}}

	start := time.Now()
	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL + "/cards/v4/detail")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()
	}
	if took := time.Since(start); took < 350*time.Millisecond {
		t.Fatalf("three requests took %v, want at least two crawl delays", took)
	}
}

func TestCrawlDelayCancelled(t *testing.T) {
	tr := &Transport{}
	ctx, cancel := context.WithCancel(context.Background())
	if err := tr.pace(ctx, "https://card.wb.ru", time.Hour); err != nil {
		t.Fatalf("first request should not wait: %v", err)
	}
	cancel()
	if err := tr.pace(ctx, "https://card.wb.ru", time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
