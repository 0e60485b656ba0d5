package wildberries

import (
	"fmt"

	"github.com/lukman83/wb-scrap/internal/models"
	"github.com/shopspring/decimal"
)

// WarehouseClassifier names a warehouse and says who operates it.
type WarehouseClassifier interface {
	ClassifyWarehouse(id int64) (name string, kind models.WarehouseKind)
}

// Product wraps a card record and derives the commercial fields from it on
// every call. It never modifies the record.
type Product struct {
	rec        ProductRecord
	warehouses WarehouseClassifier
}

// NewProduct wraps rec. A nil classifier leaves every warehouse unknown.
func NewProduct(rec ProductRecord, warehouses WarehouseClassifier) *Product {
	if warehouses == nil {
		warehouses = unknownWarehouses{}
	}
	return &Product{rec: rec, warehouses: warehouses}
}

func (p *Product) Record() ProductRecord { return p.rec }
func (p *Product) ID() int64             { return p.rec.ID }
func (p *Product) Name() string          { return p.rec.Name }
func (p *Product) Brand() string         { return p.rec.Brand }

func (p *Product) firstSize() (SizeEntry, bool) {
	if len(p.rec.Sizes) == 0 {
		return SizeEntry{}, false
	}
	return p.rec.Sizes[0], true
}

// Price is the current (discounted) price, nil when the card has none.
func (p *Product) Price() *models.Money {
	s, ok := p.firstSize()
	if !ok {
		return nil
	}
	return models.FromMinor(s.Price.Product)
}

// BasicPrice is the price before discount.
func (p *Product) BasicPrice() *models.Money {
	s, ok := p.firstSize()
	if !ok {
		return nil
	}
	return models.FromMinor(s.Price.Basic)
}

func (p *Product) LogisticsPrice() *models.Money {
	s, ok := p.firstSize()
	if !ok {
		return nil
	}
	return models.FromMinor(s.Price.Logistics)
}

// DiscountPercent is the rounded drop from basic to current price, rounding
// halves to even. It is defined only when both prices exist and basic is
// higher.
func (p *Product) DiscountPercent() (int, bool) {
	basic, current := p.BasicPrice(), p.Price()
	if basic == nil || current == nil || !basic.GreaterThan(current.Decimal) {
		return 0, false
	}
	pct := basic.Sub(current.Decimal).Div(basic.Decimal).Mul(decimal.NewFromInt(100))
	return int(pct.RoundBank(0).IntPart()), true
}

// AvailableColors lists color names, skipping unnamed entries.
func (p *Product) AvailableColors() []string {
	out := make([]string, 0, len(p.rec.Colors))
	for _, c := range p.rec.Colors {
		if c.Name != "" {
			out = append(out, c.Name)
		}
	}
	return out
}

func (p *Product) ColorIDs() []int64 {
	out := make([]int64, 0, len(p.rec.Colors))
	for _, c := range p.rec.Colors {
		if c.ID != 0 {
			out = append(out, c.ID)
		}
	}
	return out
}

// AvailableSizes lists labels of sizes with stock somewhere. The "0" label
// marks a one-size product and is never listed.
func (p *Product) AvailableSizes() []string {
	out := make([]string, 0, len(p.rec.Sizes))
	for _, s := range p.rec.Sizes {
		if !s.inStock() {
			continue
		}
		if l := s.label(); l != "" && l != "0" {
			out = append(out, l)
		}
	}
	return out
}

// Warehouses flattens every stock entry of every size.
func (p *Product) Warehouses() []models.WarehouseInfo {
	out := make([]models.WarehouseInfo, 0)
	for _, s := range p.rec.Sizes {
		for _, st := range s.Stocks {
			name, kind := p.warehouses.ClassifyWarehouse(st.Warehouse)
			out = append(out, models.WarehouseInfo{
				WarehouseID:       st.Warehouse,
				WarehouseName:     name,
				IsSellerWarehouse: kind == models.WarehouseSeller,
				IsWBWarehouse:     kind == models.WarehousePlatform,
				Quantity:          st.Qty,
				DeliveryTime1:     st.Time1,
				DeliveryTime2:     st.Time2,
				Distance:          st.Dist,
				Priority:          st.Priority,
			})
		}
	}
	return out
}

func (p *Product) PlatformWarehouses() []models.WarehouseInfo {
	return filterWarehouses(p.Warehouses(), func(w models.WarehouseInfo) bool { return w.IsWBWarehouse })
}

func (p *Product) SellerWarehouses() []models.WarehouseInfo {
	return filterWarehouses(p.Warehouses(), func(w models.WarehouseInfo) bool { return w.IsSellerWarehouse })
}

func (p *Product) TotalWBStock() int {
	return sumQty(p.PlatformWarehouses())
}

func (p *Product) TotalSellerStock() int {
	return sumQty(p.SellerWarehouses())
}

func (p *Product) WarehousesSummary() models.WarehousesSummary {
	wb, seller := p.PlatformWarehouses(), p.SellerWarehouses()
	return models.WarehousesSummary{
		TotalWarehouses:       len(wb) + len(seller),
		WBWarehousesCount:     len(wb),
		SellerWarehousesCount: len(seller),
		TotalWBStock:          sumQty(wb),
		TotalSellerStock:      sumQty(seller),
		WBWarehouses:          wb,
		SellerWarehouses:      seller,
	}
}

func (p *Product) hasImages() bool {
	return p.rec.Pics > 0 && p.rec.ID > 0
}

// MainImageURL is the first image in the given size preset; ok is false
// when the card has no images or no usable id.
func (p *Product) MainImageURL(size string) (string, bool) {
	if !p.hasImages() {
		return "", false
	}
	return ImageURL(p.rec.ID, sizeOrDefault(size), 1), true
}

// AllImageURLs returns URLs for images 1..min(pics, MaxImages).
func (p *Product) AllImageURLs(size string) []string {
	if !p.hasImages() {
		return []string{}
	}
	n := min(p.rec.Pics, MaxImages)
	loc := ResolveBasket(p.rec.ID)
	size = sizeOrDefault(size)
	urls := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		urls = append(urls, loc.ImageURL(p.rec.ID, size, i))
	}
	return urls
}

func (p *Product) IsAvailable() bool { return p.rec.TotalQuantity > 0 }
func (p *Product) TotalStock() int   { return p.rec.TotalQuantity }

func (p *Product) DeliveryInfo() models.DeliveryInfo {
	s, ok := p.firstSize()
	if !ok {
		return models.DeliveryInfo{}
	}
	return models.DeliveryInfo{Time1: s.Time1, Time2: s.Time2, Distance: s.Dist}
}

func (p *Product) HasPromotions() bool { return len(p.rec.Promotions) > 0 }

func (p *Product) Promotions() []int64 {
	return append(make([]int64, 0, len(p.rec.Promotions)), p.rec.Promotions...)
}

// ProductURL is the storefront page, empty without an id.
func (p *Product) ProductURL() string {
	if p.rec.ID == 0 {
		return ""
	}
	return fmt.Sprintf("https://www.wildberries.ru/catalog/%d/detail.aspx", p.rec.ID)
}

func (p *Product) SupplierInfo() models.SupplierInfo {
	return models.SupplierInfo{
		Name:   p.rec.Supplier,
		ID:     p.rec.SupplierID,
		Rating: p.rec.SupplierRating,
	}
}

func (p *Product) String() string {
	price := "no price"
	if m := p.Price(); m != nil {
		price = m.String() + " RUB"
	}
	return fmt.Sprintf("%s (%s) - %s", p.rec.Name, p.rec.Brand, price)
}

func sizeOrDefault(size string) string {
	if size == "" {
		return DefaultImageSize
	}
	return size
}

func filterWarehouses(in []models.WarehouseInfo, keep func(models.WarehouseInfo) bool) []models.WarehouseInfo {
	out := make([]models.WarehouseInfo, 0, len(in))
	for _, w := range in {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func sumQty(ws []models.WarehouseInfo) int {
	total := 0
	for _, w := range ws {
		total += w.Quantity
	}
	return total
}

type unknownWarehouses struct{}

func (unknownWarehouses) ClassifyWarehouse(id int64) (string, models.WarehouseKind) {
	return fmt.Sprintf("Warehouse %d", id), models.WarehouseUnknown
}
