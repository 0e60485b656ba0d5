package stealth

import (
	"net/http"
	"sync"
)

// Fingerprint is one browser identity: a User-Agent plus the client hints
// that browser would send next to it.
type Fingerprint struct {
	UserAgent string
	Hints     http.Header
}

// FingerprintPool hands out fingerprints round-robin.
type FingerprintPool struct {
	mu   sync.Mutex
	list []Fingerprint
	next int
}

// NewFingerprintPool returns a pool of desktop browsers common on the
// Russian storefront. Passing fingerprints replaces the built-in set.
func NewFingerprintPool(fps ...Fingerprint) *FingerprintPool {
	if len(fps) == 0 {
		fps = storefrontBrowsers()
	}
	return &FingerprintPool{list: fps}
}

func (p *FingerprintPool) Next() Fingerprint {
	p.mu.Lock()
	defer p.mu.Unlock()
	fp := p.list[p.next%len(p.list)]
	p.next++
	return fp
}

// Len reports the pool size.
func (p *FingerprintPool) Len() int { return len(p.list) }

func storefrontBrowsers() []Fingerprint {
	return []Fingerprint{
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
			Hints:     chromiumHints(`"Chromium";v="133", "Not(A:Brand";v="99", "Google Chrome";v="133"`, "Windows"),
		},
		{
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
			Hints:     chromiumHints(`"Chromium";v="133", "Not(A:Brand";v="99", "Google Chrome";v="133"`, "macOS"),
		},
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 YaBrowser/25.2.0.0 Safari/537.36",
			Hints:     chromiumHints(`"Chromium";v="132", "Not(A:Brand";v="99", "YaBrowser";v="25.2"`, "Windows"),
		},
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36 Edg/133.0.0.0",
			Hints:     chromiumHints(`"Chromium";v="133", "Not(A:Brand";v="99", "Microsoft Edge";v="133"`, "Windows"),
		},
		{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:135.0) Gecko/20100101 Firefox/135.0",
			Hints:     http.Header{},
		},
		{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:135.0) Gecko/20100101 Firefox/135.0",
			Hints:     http.Header{},
		},
	}
}

// Firefox sends no Sec-Ch-Ua hints, so only Chromium builds carry them.
func chromiumHints(brands, platform string) http.Header {
	h := http.Header{}
	h.Set("Sec-Ch-Ua", brands)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"`+platform+`"`)
	return h
}
