package platform

import (
	"context"

	"github.com/lukman83/wb-scrap/internal/models"
)

// ProductOpts selects the delivery context a card is priced for.
type ProductOpts struct {
	City string // resolved to a destination code by the catalog
	Dest int64  // used when City is empty
	SPP  int    // loyalty discount parameter
}

// Product is the catalog-independent view of a fetched card.
type Product interface {
	ID() int64
	Name() string
	MainImageURL(size string) (string, bool)
	AllImageURLs(size string) []string
	ToSummary() models.ProductSummary
}

// Catalog fetches single product cards from a marketplace.
type Catalog interface {
	Name() string
	Product(ctx context.Context, productID int64, opts ProductOpts) (Product, error)
}
