package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/lukman83/wb-scrap/internal/download"
	"github.com/lukman83/wb-scrap/internal/models"
	"github.com/lukman83/wb-scrap/internal/platform"
	"github.com/lukman83/wb-scrap/internal/wildberries"
	"github.com/mark3labs/mcp-go/mcp"
)

type stubProduct struct {
	id   int64
	base string
	pics int
}

func (s stubProduct) ID() int64    { return s.id }
func (s stubProduct) Name() string { return "stub" }
func (s stubProduct) MainImageURL(size string) (string, bool) {
	if s.pics == 0 {
		return "", false
	}
	return s.AllImageURLs(size)[0], true
}
func (s stubProduct) AllImageURLs(size string) []string {
	out := []string{}
	for i := 1; i <= s.pics; i++ {
		out = append(out, fmt.Sprintf("%s/%s/%d.webp", s.base, size, i))
	}
	return out
}
func (s stubProduct) ToSummary() models.ProductSummary {
	return models.ProductSummary{ID: s.id, Name: "stub", PicsCount: s.pics}
}

type stubCatalog struct {
	base string
	last platform.ProductOpts
}

func (c *stubCatalog) Name() string { return "stub" }
func (c *stubCatalog) Product(_ context.Context, id int64, opts platform.ProductOpts) (platform.Product, error) {
	c.last = opts
	if id == 404 {
		return nil, &wildberries.NotFoundError{ProductID: id}
	}
	return stubProduct{id: id, base: c.base, pics: 3}, nil
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func newStubTools(t *testing.T) (*tools, *stubCatalog) {
	t.Helper()
	img := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("webp"))
	}))
	t.Cleanup(img.Close)

	cat := &stubCatalog{base: img.URL}
	platform.Register("stub", cat)
	return newTools(Deps{
		Platform:   "stub",
		City:       "moscow",
		SPP:        30,
		Downloader: download.New(img.Client()),
		ImagesDir:  t.TempDir(),
		ImageSize:  "c516x688",
		MaxImages:  2,
	}), cat
}

func TestGetProductTool(t *testing.T) {
	tl, cat := newStubTools(t)

	out, isErr := call(t, tl.handleGetProduct, map[string]any{"product_id": float64(12345), "city": "kazan"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	var sum models.ProductSummary
	if err := json.Unmarshal([]byte(out), &sum); err != nil || sum.ID != 12345 {
		t.Fatalf("unexpected summary %s (%v)", out, err)
	}
	if cat.last.City != "kazan" || cat.last.SPP != 30 {
		t.Fatalf("options not forwarded: %+v", cat.last)
	}
}

func TestGetProductToolErrors(t *testing.T) {
	tl, _ := newStubTools(t)

	if out, isErr := call(t, tl.handleGetProduct, map[string]any{}); !isErr || !strings.Contains(out, "product_id") {
		t.Fatalf("expected product_id error, got %q", out)
	}
	if out, isErr := call(t, tl.handleGetProduct, map[string]any{"product_id": float64(404)}); !isErr || !strings.Contains(out, "not found") {
		t.Fatalf("expected not found error, got %q", out)
	}
	if _, isErr := call(t, tl.handleGetProduct, map[string]any{"product_id": float64(1), "platform": "nope"}); !isErr {
		t.Fatalf("expected platform error")
	}
}

func TestProductImagesTool(t *testing.T) {
	tl, _ := newStubTools(t)

	out, isErr := call(t, tl.handleProductImages, map[string]any{"product_id": float64(7), "size": "tm"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	var got imageList
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.ImageURLs) != 3 || got.MainImageURL == nil || !strings.HasSuffix(*got.MainImageURL, "/tm/1.webp") {
		t.Fatalf("unexpected image list %+v", got)
	}
}

func TestDownloadImagesTool(t *testing.T) {
	tl, _ := newStubTools(t)

	out, isErr := call(t, tl.handleDownloadImages, map[string]any{"product_id": float64(8)})
	if isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	var report models.DownloadReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.RunID == "" || len(report.DownloadedFiles) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	for _, p := range report.DownloadedFiles {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("reported file missing: %v", err)
		}
	}

	out, _ = call(t, tl.handleDownloadImages, map[string]any{"product_id": float64(8), "sizes": "tm,big", "max": float64(1)})
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.DownloadInfo["tm"]) != 1 || len(report.DownloadInfo["big"]) != 1 {
		t.Fatalf("unexpected per-size report %+v", report.DownloadInfo)
	}
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(Router("secret", Deps{Platform: "stub"}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %v %v", resp, err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: %v %v", resp, err)
	}
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/mcp", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("mcp: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/mcp", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("mcp: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong token, got %d", resp.StatusCode)
	}
}
