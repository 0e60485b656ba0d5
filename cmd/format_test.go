package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lukman83/wb-scrap/internal/models"
)

func TestFormatMoney(t *testing.T) {
	cases := map[int64]string{
		0:         "-",
		99:        "0.99 ₽",
		123450:    "1 234.50 ₽",
		123456789: "1 234 567.89 ₽",
	}
	for minor, want := range cases {
		if got := formatMoney(models.FromMinor(minor)); got != want {
			t.Fatalf("formatMoney(%d) = %q, want %q", minor, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Платье женское летнее", 10); got != "Платье ..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short strings must be kept, got %q", got)
	}
}

func TestPrintSummary(t *testing.T) {
	discount := 25
	s := models.ProductSummary{
		Name:            "Кроссовки",
		Brand:           "Nike",
		Price:           models.FromMinor(750000),
		BasicPrice:      models.FromMinor(1000000),
		DiscountPercent: &discount,
		AvailableSizes:  []string{"42", "43"},
		TotalStock:      6,
		ProductURL:      "https://www.wildberries.ru/catalog/1/detail.aspx",
		WarehousesSummary: models.WarehousesSummary{
			TotalWBStock:      6,
			WBWarehousesCount: 1,
			WBWarehouses:      []models.WarehouseInfo{{WarehouseName: "Koledino", Quantity: 6}},
		},
	}
	var buf bytes.Buffer
	printSummary(&buf, s)
	out := buf.String()
	for _, want := range []string{"Кроссовки", "7 500.00 ₽", "was 10 000.00 ₽, -25%", "Sizes: 42, 43", "Koledino", "detail.aspx"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
