package wildberries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/lukman83/wb-scrap/internal/metrics"
	"github.com/lukman83/wb-scrap/internal/platform"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "https://card.wb.ru/cards/v4/detail"
	DefaultSPP      = 30
)

// DestinationResolver turns a city name into a delivery destination code.
type DestinationResolver interface {
	Destination(city string) (int64, bool)
}

// Client looks up product cards.
type Client struct {
	endpoint     string
	fetchers     []Fetcher
	warehouses   WarehouseClassifier
	destinations DestinationResolver
	log          *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint points the client at another card API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithFetchers replaces the fetcher chain. Fetchers are tried in order
// until one returns a body.
func WithFetchers(f ...Fetcher) Option {
	return func(c *Client) { c.fetchers = f }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = logger.OrNop(l) }
}

// NewClient creates a client. Without WithFetchers it calls the API over
// a default HTTP client.
func NewClient(warehouses WarehouseClassifier, destinations DestinationResolver, opts ...Option) *Client {
	c := &Client{
		endpoint:     DefaultEndpoint,
		warehouses:   warehouses,
		destinations: destinations,
		log:          zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if len(c.fetchers) == 0 {
		c.fetchers = []Fetcher{NewAPIFetcher(nil, 0)}
	}
	return c
}

// DetailURL builds the card API request URL.
func (c *Client) DetailURL(productID, dest int64, spp int) string {
	q := url.Values{}
	q.Set("appType", "2")
	q.Set("curr", "rub")
	q.Set("dest", strconv.FormatInt(dest, 10))
	q.Set("spp", strconv.Itoa(spp))
	q.Set("hide_dtype", "13")
	q.Set("nm", strconv.FormatInt(productID, 10))
	return c.endpoint + "?" + q.Encode()
}

// GetProduct fetches one card for delivery to dest. It fails with a
// *NotFoundError when the response lists no products and a
// *TransportError when no fetcher produced a decodable response.
func (c *Client) GetProduct(ctx context.Context, productID, dest int64, spp int) (*Product, error) {
	reqURL := c.DetailURL(productID, dest, spp)

	var lastErr error
	for _, f := range c.fetchers {
		started := time.Now()
		platform.ReportProgress(ctx, fmt.Sprintf("Fetching product %d via %s...", productID, f.Name()))

		rec, err := c.fetchRecord(ctx, f, reqURL, productID)
		switch {
		case err == nil:
			metrics.ObserveCatalog(f.Name(), "ok", started)
			c.log.Debug("product fetched",
				zap.Int64("product_id", productID), zap.String("fetcher", f.Name()))
			return NewProduct(rec, c.warehouses), nil
		case errors.Is(err, ErrNotFound):
			metrics.ObserveCatalog(f.Name(), "not_found", started)
			return nil, err
		}

		metrics.ObserveCatalog(f.Name(), "transport", started)
		c.log.Warn("product fetch failed",
			zap.Int64("product_id", productID), zap.String("fetcher", f.Name()), zap.Error(err))
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &TransportError{URL: reqURL, Err: lastErr}
}

// GetProductInCity resolves city to a destination code and fetches the card.
func (c *Client) GetProductInCity(ctx context.Context, productID int64, city string, spp int) (*Product, error) {
	if c.destinations == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	dest, ok := c.destinations.Destination(city)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return c.GetProduct(ctx, productID, dest, spp)
}

type detailEnvelope struct {
	Products []ProductRecord `json:"products"`
}

func (c *Client) fetchRecord(ctx context.Context, f Fetcher, reqURL string, productID int64) (ProductRecord, error) {
	body, err := f.Fetch(ctx, reqURL)
	if err != nil {
		return ProductRecord{}, err
	}
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ProductRecord{}, fmt.Errorf("decode card response: %w", err)
	}
	if len(env.Products) == 0 {
		return ProductRecord{}, &NotFoundError{ProductID: productID}
	}
	return env.Products[0], nil
}

func (c *Client) Name() string { return "wildberries" }

// Product implements platform.Catalog. A city, when given, wins over Dest.
func (c *Client) Product(ctx context.Context, productID int64, opts platform.ProductOpts) (platform.Product, error) {
	var (
		p   *Product
		err error
	)
	if opts.City != "" {
		p, err = c.GetProductInCity(ctx, productID, opts.City, opts.SPP)
	} else {
		p, err = c.GetProduct(ctx, productID, opts.Dest, opts.SPP)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

var _ platform.Catalog = (*Client)(nil)
