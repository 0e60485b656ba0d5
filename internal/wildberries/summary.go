package wildberries

import "github.com/lukman83/wb-scrap/internal/models"

// ToSummary gathers every derived field into one exportable value. It reads
// only the record and the classifier, so equal inputs encode identically.
func (p *Product) ToSummary() models.ProductSummary {
	s := models.ProductSummary{
		ID:                p.rec.ID,
		Root:              p.rec.Root,
		Name:              p.rec.Name,
		Brand:             p.rec.Brand,
		BrandID:           p.rec.BrandID,
		Entity:            p.rec.Entity,
		Supplier:          p.rec.Supplier,
		SupplierInfo:      p.SupplierInfo(),
		Rating:            p.rec.Rating,
		ReviewRating:      p.rec.ReviewRating,
		NmReviewRating:    p.rec.NmReviewRating,
		Feedbacks:         p.rec.Feedbacks,
		NmFeedbacks:       p.rec.NmFeedbacks,
		Price:             p.Price(),
		BasicPrice:        p.BasicPrice(),
		LogisticsPrice:    p.LogisticsPrice(),
		AvailableColors:   p.AvailableColors(),
		AvailableSizes:    p.AvailableSizes(),
		ProductURL:        p.ProductURL(),
		IsAvailable:       p.IsAvailable(),
		TotalStock:        p.TotalStock(),
		DeliveryInfo:      p.DeliveryInfo(),
		HasPromotions:     p.HasPromotions(),
		Promotions:        p.Promotions(),
		Volume:            p.rec.Volume,
		PicsCount:         p.rec.Pics,
		WarehousesSummary: p.WarehousesSummary(),
	}
	if d, ok := p.DiscountPercent(); ok {
		s.DiscountPercent = &d
	}
	if u, ok := p.MainImageURL(DefaultImageSize); ok {
		s.MainImageURL = &u
	}
	return s
}
