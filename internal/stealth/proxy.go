package stealth

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

// ProxyPool rotates requests across a fixed list of proxies, one
// transport per proxy.
type ProxyPool struct {
	mu     sync.Mutex
	hops   []proxyHop
	cursor int
}

type proxyHop struct {
	url       *url.URL
	transport http.RoundTripper
}

// NewProxyPool returns nil for an empty list. base, when non-nil, is cloned
// for every proxy so pool sizes and timeouts carry over.
func NewProxyPool(proxies []*url.URL, base *http.Transport) *ProxyPool {
	if len(proxies) == 0 {
		return nil
	}
	p := &ProxyPool{hops: make([]proxyHop, 0, len(proxies))}
	for _, u := range proxies {
		var t *http.Transport
		if base != nil {
			t = base.Clone()
		} else {
			t = &http.Transport{}
		}
		t.Proxy = http.ProxyURL(u)
		p.hops = append(p.hops, proxyHop{url: u, transport: t})
	}
	return p
}

// Next returns the transport for the next proxy and its redacted address.
func (p *ProxyPool) Next() (http.RoundTripper, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := p.hops[p.cursor%len(p.hops)]
	p.cursor++
	return h.transport, h.url.Redacted()
}

func (p *ProxyPool) Len() int { return len(p.hops) }

// LoadProxyFile reads one proxy per line. Blank lines and lines starting
// with # are skipped; a line without a scheme is taken as http.
func LoadProxyFile(path string) ([]*url.URL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open proxy file: %w", err)
	}
	defer f.Close()

	var out []*url.URL
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := ParseProxy(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		out = append(out, u)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read proxy file: %w", err)
	}
	return out, nil
}

// ParseProxy parses http, https and socks5 proxy addresses.
func ParseProxy(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse proxy: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy %q has no host", u.Redacted())
	}
	return u, nil
}
