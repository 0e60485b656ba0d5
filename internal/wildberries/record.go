package wildberries

// ProductRecord is one entry of the card API's products array. Missing keys
// decode to zero values, which are the defaults the rest of the package
// relies on (0 for ids and counts, "" for text, nil for lists).
type ProductRecord struct {
	ID             int64        `json:"id"`
	Root           int64        `json:"root"`
	Name           string       `json:"name"`
	Brand          string       `json:"brand"`
	BrandID        int64        `json:"brandId"`
	Entity         string       `json:"entity"`
	Supplier       string       `json:"supplier"`
	SupplierID     int64        `json:"supplierId"`
	SupplierRating float64      `json:"supplierRating"`
	Rating         float64      `json:"rating"`
	ReviewRating   float64      `json:"reviewRating"`
	NmReviewRating float64      `json:"nmReviewRating"`
	Feedbacks      int          `json:"feedbacks"`
	NmFeedbacks    int          `json:"nmFeedbacks"`
	Sizes          []SizeEntry  `json:"sizes"`
	Colors         []ColorEntry `json:"colors"`
	Pics           int          `json:"pics"`
	Volume         int          `json:"volume"`
	Promotions     []int64      `json:"promotions"`
	TotalQuantity  int          `json:"totalQuantity"`
}

type SizeEntry struct {
	Name     string       `json:"name"`
	OrigName string       `json:"origName"`
	Stocks   []StockEntry `json:"stocks"`
	Price    PriceBlock   `json:"price"`
	Time1    int          `json:"time1"`
	Time2    int          `json:"time2"`
	Dist     int          `json:"dist"`
}

// PriceBlock amounts are in kopecks.
type PriceBlock struct {
	Basic     int64 `json:"basic"`
	Product   int64 `json:"product"`
	Total     int64 `json:"total"`
	Logistics int64 `json:"logistics"`
	Return    int64 `json:"return"`
}

type StockEntry struct {
	Warehouse int64 `json:"wh"`
	Qty       int   `json:"qty"`
	Time1     int   `json:"time1"`
	Time2     int   `json:"time2"`
	Dist      int   `json:"dist"`
	Priority  int   `json:"priority"`
}

type ColorEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// label is the display name of a size, falling back to OrigName.
func (s SizeEntry) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.OrigName
}

func (s SizeEntry) inStock() bool {
	for _, st := range s.Stocks {
		if st.Qty > 0 {
			return true
		}
	}
	return false
}
