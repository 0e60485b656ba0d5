package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/lukman83/wb-scrap/internal/platform"
	"github.com/lukman83/wb-scrap/internal/ui"
	"github.com/lukman83/wb-scrap/internal/wildberries"
	"github.com/spf13/cobra"
)

var productCmd = &cobra.Command{
	Use:   "product [id]",
	Short: "Show a product card summary",
	Long: `Fetch a product card and print its summary.

Stock is split into platform and seller warehouses. The built-in lookup
data only knows platform warehouses, so seller counts stay at 0 unless
--data-file lists the seller warehouse IDs with kind: seller.`,
	Args: cobra.ExactArgs(1),
	RunE: runProduct,
}

func init() {
	productCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}
	if _, err := setup(); err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	p, err := fetchProduct(cmd, id)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		printSummary(os.Stdout, p.ToSummary())
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(p.ToSummary())
	}
	return nil
}

// fetchProduct looks the card up on the selected platform behind a spinner.
func fetchProduct(cmd *cobra.Command, id int64) (platform.Product, error) {
	platformName, _ := cmd.Flags().GetString("platform")
	catalog, err := platform.Get(platformName)
	if err != nil {
		return nil, err
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Fetching %d from %s...", id, platformName))
	ctx := platform.WithProgress(cmd.Context(), spin.Update)
	p, err := catalog.Product(ctx, id, platform.ProductOpts{City: cfg.City, SPP: cfg.SPP})
	spin.Stop()

	if errors.Is(err, wildberries.ErrNotFound) {
		return nil, fmt.Errorf("product %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	return p, nil
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}
