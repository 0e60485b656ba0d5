package wildberries

import (
	"fmt"
	"sort"
)

// CDNHost is the image CDN domain; buckets are its basket-NN subdomains.
const CDNHost = "wbbasket.ru"

// DefaultImageSize is the preset used when no size is requested.
const DefaultImageSize = "c516x688"

// MaxImages caps how many positional images are addressed per product,
// whatever the card's pics count says.
const MaxImages = 14

type basketRange struct {
	upper int64
	label string
}

// basketTable is sorted by upper bound. An id belongs to the first range
// whose upper bound is >= id.
var basketTable = []basketRange{
	{143, "01"},
	{287, "02"},
	{431, "03"},
	{719, "04"},
	{1007, "05"},
	{1061, "06"},
	{1115, "07"},
	{1169, "08"},
	{1313, "09"},
	{1601, "10"},
	{1655, "11"},
	{1919, "12"},
	{2045, "13"},
	{2189, "14"},
	{2405, "15"},
}

const overflowBasket = "16"

// Location is where a product's images live on the CDN.
type Location struct {
	Basket string
	Vol    int64
	Part   int64
}

// ResolveBasket maps a product id to its CDN location. The id is not
// validated; callers treat non-positive ids as having no images.
func ResolveBasket(id int64) Location {
	return Location{
		Basket: basketLabel(id),
		Vol:    id / 100_000,
		Part:   partOf(id),
	}
}

func basketLabel(id int64) string {
	i := sort.Search(len(basketTable), func(i int) bool {
		return basketTable[i].upper >= id
	})
	if i == len(basketTable) {
		return overflowBasket
	}
	return basketTable[i].label
}

// partOf drops the last three digits; ids of three digits or fewer are
// their own part.
func partOf(id int64) int64 {
	if id < 1000 && id > -1000 {
		return id
	}
	return id / 1000
}

// ImageURL builds the webp URL of the index-th (1-based) image.
func (l Location) ImageURL(id int64, size string, index int) string {
	return fmt.Sprintf("https://basket-%s.%s/vol%d/part%d/%d/images/%s/%d.webp",
		l.Basket, CDNHost, l.Vol, l.Part, id, size, index)
}

// ImageURL resolves id and builds the index-th image URL.
func ImageURL(id int64, size string, index int) string {
	return ResolveBasket(id).ImageURL(id, size, index)
}
