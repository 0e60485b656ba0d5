package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lukman83/wb-scrap/config"
	"github.com/lukman83/wb-scrap/internal/download"
	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images [id]",
	Short: "Download product images",
	Long: `Download a product's images from the CDN.

Without --sizes the images land in <dir>/<id>/ in the configured size.
With --sizes each preset gets its own subdirectory, and --sizes all
fetches tm, c246x328, c516x688 and big.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().String("dir", "", "Output directory (default from config)")
	imagesCmd.Flags().String("sizes", "", "Comma separated size presets, or all")
	imagesCmd.Flags().Int("max", 0, "Maximum images per size (default from config)")
	imagesCmd.Flags().Bool("main", false, "Download only the main image")
	imagesCmd.Flags().Bool("urls", false, "Print image URLs without downloading")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}
	a, err := setup()
	if err != nil {
		return err
	}

	dir := cfg.ImagesDir
	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		dir = v
	}
	dir = filepath.Join(dir, strconv.FormatInt(id, 10))
	maxImages := cfg.MaxImages
	if cmd.Flags().Changed("max") {
		maxImages, _ = cmd.Flags().GetInt("max")
	}
	sizesFlag, _ := cmd.Flags().GetString("sizes")
	var sizes []string
	if sizesFlag == "all" {
		sizes = download.DefaultSizes
	} else {
		sizes = config.SplitList(sizesFlag)
	}

	p, err := fetchProduct(cmd, id)
	if err != nil {
		return err
	}

	if only, _ := cmd.Flags().GetBool("urls"); only {
		for _, u := range p.AllImageURLs(cfg.ImageSize) {
			fmt.Fprintln(os.Stdout, u)
		}
		return nil
	}

	if mainOnly, _ := cmd.Flags().GetBool("main"); mainOnly {
		path, err := a.downloader.DownloadMain(cmd.Context(), p, dir, cfg.ImageSize)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintf(os.Stderr, "Product %d has no images\n", id)
			return nil
		}
		logger.Infow("main image saved", "product_id", id, "path", path)
		fmt.Fprintln(os.Stdout, path)
		return nil
	}

	report, err := a.downloader.DownloadProduct(cmd.Context(), p, download.Options{
		Dir:   dir,
		Size:  cfg.ImageSize,
		Sizes: sizes,
		Max:   maxImages,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %d image(s), %d failed, under %s\n",
		len(report.DownloadedFiles), len(report.Failures), dir)
	return nil
}
