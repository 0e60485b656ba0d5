package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/lukman83/wb-scrap/config"
	"github.com/lukman83/wb-scrap/internal/download"
	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/lukman83/wb-scrap/internal/platform"
	"github.com/lukman83/wb-scrap/internal/wildberries"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

type tools struct {
	deps Deps
	log  *zap.Logger
}

func newTools(d Deps) *tools {
	if d.Platform == "" {
		d.Platform = "wildberries"
	}
	if d.Downloader == nil {
		d.Downloader = download.New(nil, download.WithLogger(d.Log))
	}
	if d.ImagesDir == "" {
		d.ImagesDir = "images"
	}
	return &tools{deps: d, log: logger.OrNop(d.Log)}
}

func registerTools(s *server.MCPServer, t *tools) {
	common := []mcp.ToolOption{
		mcp.WithNumber("product_id",
			mcp.Required(),
			mcp.Description("Product article number (nm id)"),
		),
		mcp.WithString("city",
			mcp.Description("Delivery city or numeric dest code (default from config)"),
		),
		mcp.WithString("platform",
			mcp.Description("Catalog name (default: wildberries)"),
		),
	}

	s.AddTool(mcp.NewTool("get_product", append([]mcp.ToolOption{
		mcp.WithDescription("Fetch a product card and return its summary: prices, discount, sizes, colors, stock by warehouse, images"),
		mcp.WithNumber("spp", mcp.Description("Loyalty discount parameter (default 30)")),
	}, common...)...), t.handleGetProduct)

	s.AddTool(mcp.NewTool("product_images", append([]mcp.ToolOption{
		mcp.WithDescription("List CDN image URLs of a product without downloading them"),
		mcp.WithString("size", mcp.Description("Size preset: tm, c246x328, c516x688, big")),
	}, common...)...), t.handleProductImages)

	s.AddTool(mcp.NewTool("download_images", append([]mcp.ToolOption{
		mcp.WithDescription("Download product images to the server's image directory and report the written files"),
		mcp.WithString("sizes", mcp.Description("Comma separated size presets; empty downloads one flat set in the default size")),
		mcp.WithNumber("max", mcp.Description("Maximum images per size (default from config)")),
	}, common...)...), t.handleDownloadImages)
}

func (t *tools) product(ctx context.Context, req mcp.CallToolRequest) (platform.Product, *mcp.CallToolResult) {
	id := int64(req.GetInt("product_id", 0))
	if id <= 0 {
		return nil, mcp.NewToolResultError("product_id must be a positive integer")
	}

	catalog, err := platform.Get(req.GetString("platform", t.deps.Platform))
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("platform error: %v", err))
	}

	opts := platform.ProductOpts{
		City: req.GetString("city", t.deps.City),
		SPP:  req.GetInt("spp", t.deps.SPP),
	}
	p, err := catalog.Product(ctx, id, opts)
	switch {
	case errors.Is(err, wildberries.ErrNotFound):
		return nil, mcp.NewToolResultError(fmt.Sprintf("product %d not found", id))
	case errors.Is(err, wildberries.ErrUnknownCity):
		return nil, mcp.NewToolResultError(err.Error())
	case err != nil:
		t.log.Warn("catalog lookup failed", zap.Int64("product_id", id), zap.Error(err))
		return nil, mcp.NewToolResultError(fmt.Sprintf("catalog error: %v", err))
	}
	return p, nil
}

func (t *tools) handleGetProduct(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := t.product(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(p.ToSummary())
}

type imageList struct {
	ProductID    int64    `json:"product_id"`
	Size         string   `json:"size"`
	MainImageURL *string  `json:"main_image_url"`
	ImageURLs    []string `json:"image_urls"`
}

func (t *tools) handleProductImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := t.product(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	size := req.GetString("size", t.deps.ImageSize)
	out := imageList{ProductID: p.ID(), Size: size, ImageURLs: p.AllImageURLs(size)}
	if u, ok := p.MainImageURL(size); ok {
		out.MainImageURL = &u
	}
	return jsonResult(out)
}

func (t *tools) handleDownloadImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := t.product(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	opts := download.Options{
		Dir:   filepath.Join(t.deps.ImagesDir, strconv.FormatInt(p.ID(), 10)),
		Size:  t.deps.ImageSize,
		Sizes: config.SplitList(req.GetString("sizes", "")),
		Max:   req.GetInt("max", t.deps.MaxImages),
	}
	report, err := t.deps.Downloader.DownloadProduct(ctx, p, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download error: %v", err)), nil
	}
	return jsonResult(report)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
