// Package download fetches product images concurrently and writes them to
// disk. A failed image never stops the others; it is logged, counted and
// reported next to the written paths.
package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/lukman83/wb-scrap/internal/httputil"
	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/lukman83/wb-scrap/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultSizes are the presets fetched when sizes are requested but none named.
var DefaultSizes = []string{"tm", "c246x328", "c516x688", "big"}

const defaultExt = ".webp"

// ImageSource is a product whose images can be addressed by size preset.
// An empty size means the source's default preset.
type ImageSource interface {
	ID() int64
	Name() string
	MainImageURL(size string) (string, bool)
	AllImageURLs(size string) []string
}

// Failure is one image that could not be saved.
type Failure struct {
	URL  string
	Path string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("download %s: %v", f.URL, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Result of one batch. Paths keep the order of the input URLs.
type Result struct {
	Paths    []string
	Failures []Failure
}

// ErrStatus marks a non-2xx image response.
var ErrStatus = errors.New("unexpected status")

// Downloader runs image batches.
type Downloader struct {
	client  *http.Client
	limit   int
	limiter *rate.Limiter
	log     *zap.Logger
}

type Option func(*Downloader)

// WithConcurrency caps in-flight requests per batch; 0 means one goroutine
// per URL.
func WithConcurrency(n int) Option {
	return func(d *Downloader) { d.limit = n }
}

func WithRateLimiter(l *rate.Limiter) Option {
	return func(d *Downloader) { d.limiter = l }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Downloader) { d.log = logger.OrNop(l) }
}

func New(client *http.Client, opts ...Option) *Downloader {
	if client == nil {
		client = httputil.NewHTTPClient(nil, 0)
	}
	d := &Downloader{client: client, log: zap.NewNop()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Fetch downloads urls[i] into paths[i], all at once, and returns when
// every task has settled. The label only tags logs and metrics.
func (d *Downloader) Fetch(ctx context.Context, label string, urls, paths []string) Result {
	if len(urls) != len(paths) {
		panic("download: urls and paths differ in length")
	}
	if label == "" {
		label = "default"
	}

	written := make([]bool, len(urls))
	failures := make([]error, len(urls))

	var g errgroup.Group
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}
	for i := range urls {
		g.Go(func() error {
			n, outcome, err := d.fetchOne(ctx, urls[i], paths[i])
			metrics.ObserveImage(label, outcome, n)
			if err != nil {
				failures[i] = err
				d.log.Warn("image download failed",
					zap.String("size", label), zap.String("url", urls[i]), zap.Error(err))
				return nil
			}
			written[i] = true
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Paths: make([]string, 0, len(urls))}
	for i := range urls {
		if written[i] {
			res.Paths = append(res.Paths, paths[i])
			continue
		}
		res.Failures = append(res.Failures, Failure{URL: urls[i], Path: paths[i], Err: failures[i]})
	}
	return res
}

func (d *Downloader) fetchOne(ctx context.Context, rawURL, dst string) (int64, string, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return 0, "transport", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "transport", err
	}
	httputil.Apply(req, httputil.ImageHeaders())

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, "transport", err
	}
	defer resp.Body.Close()
	if !httputil.IsSuccess(resp) {
		return 0, "status", fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return 0, "transport", fmt.Errorf("read body: %w", err)
	}
	if err := writeFile(dst, body); err != nil {
		return 0, "write", err
	}
	return int64(len(body)), "ok", nil
}

// writeFile stages body in a temp file next to dst and renames it into
// place. On failure only the temp file is removed.
func writeFile(dst string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	_, werr := tmp.Write(body)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// DownloadAll saves up to max images (max <= 0: all addressed images) of
// one size preset into dir as {id}_{n}{ext}. The URL list is cut before
// any request goes out. An error is returned only when dir cannot be
// created.
func (d *Downloader) DownloadAll(ctx context.Context, src ImageSource, dir, size string, max int) (Result, error) {
	urls := src.AllImageURLs(size)
	if max > 0 && len(urls) > max {
		urls = urls[:max]
	}
	if len(urls) == 0 {
		return Result{Paths: []string{}}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create image dir: %w", err)
	}

	paths := make([]string, len(urls))
	for i, u := range urls {
		paths[i] = filepath.Join(dir, fmt.Sprintf("%d_%d%s", src.ID(), i+1, extOf(u)))
	}
	return d.Fetch(ctx, size, urls, paths), nil
}

// DownloadBySize runs one batch per size preset, each into root/<size>.
// Batches run one after another; repeated presets run once and an empty
// sizes list means DefaultSizes.
func (d *Downloader) DownloadBySize(ctx context.Context, src ImageSource, root string, sizes []string, max int) (map[string]Result, error) {
	sizes = uniqueSizes(sizes)
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	out := make(map[string]Result, len(sizes))
	for _, size := range sizes {
		res, err := d.DownloadAll(ctx, src, filepath.Join(root, size), size, max)
		if err != nil {
			return out, err
		}
		out[size] = res
	}
	return out, nil
}

// DownloadMain saves the first image as {id}_main{ext}. It returns "" and
// no error when the product has no images.
func (d *Downloader) DownloadMain(ctx context.Context, src ImageSource, dir, size string) (string, error) {
	u, ok := src.MainImageURL(size)
	if !ok {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	dst := filepath.Join(dir, fmt.Sprintf("%d_main%s", src.ID(), extOf(u)))
	res := d.Fetch(ctx, size, []string{u}, []string{dst})
	if len(res.Failures) > 0 {
		return "", res.Failures[0]
	}
	return dst, nil
}

// uniqueSizes drops blank and repeated presets, keeping first-seen order.
func uniqueSizes(sizes []string) []string {
	seen := make(map[string]bool, len(sizes))
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func extOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultExt
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return defaultExt
}
