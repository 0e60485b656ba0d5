package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lukman83/wb-scrap/internal/models"
)

// printSummary prints a product summary as a human-friendly card.
func printSummary(w io.Writer, s models.ProductSummary) {
	fmt.Fprintf(w, " %s\n", truncate(s.Name, 80))
	fmt.Fprintf(w, "    Brand: %s  |  Seller: %s", orDash(s.Brand), orDash(s.Supplier))
	if s.SupplierInfo.Rating > 0 {
		fmt.Fprintf(w, " (%.1f)", s.SupplierInfo.Rating)
	}
	fmt.Fprintln(w)

	priceLine := "    Price: " + formatMoney(s.Price)
	if s.BasicPrice != nil && s.DiscountPercent != nil && *s.DiscountPercent > 0 {
		priceLine += fmt.Sprintf("  (was %s, -%d%%)", formatMoney(s.BasicPrice), *s.DiscountPercent)
	}
	if s.LogisticsPrice != nil {
		priceLine += "  |  Logistics: " + formatMoney(s.LogisticsPrice)
	}
	fmt.Fprintln(w, priceLine)

	fmt.Fprintf(w, "    Rating: %.1f (%d reviews)\n", s.ReviewRating, s.Feedbacks)
	if len(s.AvailableSizes) > 0 {
		fmt.Fprintf(w, "    Sizes: %s\n", strings.Join(s.AvailableSizes, ", "))
	}
	if len(s.AvailableColors) > 0 {
		fmt.Fprintf(w, "    Colors: %s\n", strings.Join(s.AvailableColors, ", "))
	}

	ws := s.WarehousesSummary
	fmt.Fprintf(w, "    Stock: %d total  |  WB: %d in %d warehouse(s)  |  Seller: %d in %d\n",
		s.TotalStock, ws.TotalWBStock, ws.WBWarehousesCount, ws.TotalSellerStock, ws.SellerWarehousesCount)
	for _, wh := range append(ws.WBWarehouses, ws.SellerWarehouses...) {
		fmt.Fprintf(w, "      - %-28s %5d pcs  %d-%dh\n",
			truncate(wh.WarehouseName, 28), wh.Quantity, wh.DeliveryTime1, wh.DeliveryTime2)
	}
	if d := s.DeliveryInfo; d.Time1+d.Time2 > 0 {
		fmt.Fprintf(w, "    Delivery: %d-%dh\n", d.Time1, d.Time2)
	}
	fmt.Fprintf(w, "    Images: %d\n", s.PicsCount)
	fmt.Fprintf(w, "    %s\n", s.ProductURL)
}

// formatMoney renders roubles with space separated thousands, e.g.
// "1 234.50 ₽".
func formatMoney(m *models.Money) string {
	if m == nil {
		return "-"
	}
	s := m.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)
	out := strings.Join(parts, " ")
	if neg {
		out = "-" + out
	}
	return out + "." + frac + " ₽"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
