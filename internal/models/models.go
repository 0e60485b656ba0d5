package models

type SupplierInfo struct {
	Name   string  `json:"name"`
	ID     int64   `json:"id"`
	Rating float64 `json:"rating"`
}

// DeliveryInfo is taken from the first size entry; all zero when there is none.
type DeliveryInfo struct {
	Time1    int `json:"time1"`
	Time2    int `json:"time2"`
	Distance int `json:"distance"`
}

type WarehouseInfo struct {
	WarehouseID       int64  `json:"warehouse_id"`
	WarehouseName     string `json:"warehouse_name"`
	IsSellerWarehouse bool   `json:"is_seller_warehouse"`
	IsWBWarehouse     bool   `json:"is_wb_warehouse"`
	Quantity          int    `json:"quantity"`
	DeliveryTime1     int    `json:"delivery_time_1"`
	DeliveryTime2     int    `json:"delivery_time_2"`
	Distance          int    `json:"distance"`
	Priority          int    `json:"priority"`
}

type WarehousesSummary struct {
	TotalWarehouses       int             `json:"total_warehouses"`
	WBWarehousesCount     int             `json:"wb_warehouses_count"`
	SellerWarehousesCount int             `json:"seller_warehouses_count"`
	TotalWBStock          int             `json:"total_wb_stock"`
	TotalSellerStock      int             `json:"total_seller_stock"`
	WBWarehouses          []WarehouseInfo `json:"wb_warehouses"`
	SellerWarehouses      []WarehouseInfo `json:"seller_warehouses"`
}

// ProductSummary is the exportable view of a product card. Absent prices
// and discounts encode as null.
type ProductSummary struct {
	ID                int64             `json:"id"`
	Root              int64             `json:"root"`
	Name              string            `json:"name"`
	Brand             string            `json:"brand"`
	BrandID           int64             `json:"brand_id"`
	Entity            string            `json:"entity"`
	Supplier          string            `json:"supplier"`
	SupplierInfo      SupplierInfo      `json:"supplier_info"`
	Rating            float64           `json:"rating"`
	ReviewRating      float64           `json:"review_rating"`
	NmReviewRating    float64           `json:"nm_review_rating"`
	Feedbacks         int               `json:"feedbacks"`
	NmFeedbacks       int               `json:"nm_feedbacks"`
	Price             *Money            `json:"price"`
	BasicPrice        *Money            `json:"basic_price"`
	LogisticsPrice    *Money            `json:"logistics_price"`
	DiscountPercent   *int              `json:"discount_percent"`
	AvailableColors   []string          `json:"available_colors"`
	AvailableSizes    []string          `json:"available_sizes"`
	MainImageURL      *string           `json:"main_image_url"`
	ProductURL        string            `json:"product_url"`
	IsAvailable       bool              `json:"is_available"`
	TotalStock        int               `json:"total_stock"`
	DeliveryInfo      DeliveryInfo      `json:"delivery_info"`
	HasPromotions     bool              `json:"has_promotions"`
	Promotions        []int64           `json:"promotions"`
	Volume            int               `json:"volume"`
	PicsCount         int               `json:"pics_count"`
	WarehousesSummary WarehousesSummary `json:"warehouses_summary"`
}

type DownloadFailure struct {
	URL   string `json:"url"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// DownloadReport describes one image download run for a product.
// DownloadInfo is keyed by image size, or "default" for a flat download.
type DownloadReport struct {
	RunID           string              `json:"run_id"`
	ProductID       int64               `json:"product_id"`
	ProductName     string              `json:"product_name"`
	DownloadedFiles []string            `json:"downloaded_files"`
	DownloadInfo    map[string][]string `json:"download_info"`
	Failures        []DownloadFailure   `json:"failures,omitempty"`
}

// WarehouseKind tells who operates a stock location.
type WarehouseKind int

const (
	WarehouseUnknown WarehouseKind = iota
	WarehousePlatform
	WarehouseSeller
)

func (k WarehouseKind) String() string {
	switch k {
	case WarehousePlatform:
		return "platform"
	case WarehouseSeller:
		return "seller"
	default:
		return "unknown"
	}
}

// ParseWarehouseKind accepts "platform"/"wb" and "seller"; anything else is unknown.
func ParseWarehouseKind(s string) WarehouseKind {
	switch s {
	case "platform", "wb":
		return WarehousePlatform
	case "seller":
		return WarehouseSeller
	default:
		return WarehouseUnknown
	}
}
