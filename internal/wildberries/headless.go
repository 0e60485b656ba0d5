package wildberries

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"
)

// HeadlessFetcher opens the card API URL in a headless Chromium and reads
// the JSON the browser renders. It gets past blocks that only let real
// browsers through, at the cost of a browser launch per lookup.
type HeadlessFetcher struct {
	launcherURL string // optional remote launcher
	timeout     time.Duration
}

func NewHeadlessFetcher(launcherURL string, timeout time.Duration) *HeadlessFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HeadlessFetcher{launcherURL: launcherURL, timeout: timeout}
}

func (h *HeadlessFetcher) Name() string { return "headless" }

func (h *HeadlessFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	page, cleanup, err := h.openPage(ctx, url)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	timed := page.Timeout(h.timeout)
	if err := timed.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait page load: %w", err)
	}

	content, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("get page HTML: %w", err)
	}
	body, err := extractRenderedJSON(content)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (h *HeadlessFetcher) openPage(ctx context.Context, pageURL string) (*rod.Page, func(), error) {
	var l *launcher.Launcher
	if h.launcherURL != "" {
		l = launcher.MustNewManaged(h.launcherURL)
	} else {
		l = launcher.New().Headless(true).Logger(io.Discard)
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		browser.Close()
		l.Cleanup()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}

	cleanup := func() {
		page.Close()
		browser.Close()
		l.Cleanup()
	}
	return page, cleanup, nil
}

// extractRenderedJSON pulls the JSON text out of the page Chromium builds
// around a JSON response: the first <pre>, or the whole body text when the
// viewer is absent.
func extractRenderedJSON(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var pre, body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pre != nil {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "pre":
				pre = n
				return
			case "body":
				body = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	target := pre
	if target == nil {
		target = body
	}
	if target == nil {
		return "", fmt.Errorf("no body in rendered page")
	}
	text := strings.TrimSpace(textOf(target))
	if !strings.HasPrefix(text, "{") {
		return "", fmt.Errorf("rendered page holds no JSON")
	}
	return text, nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
