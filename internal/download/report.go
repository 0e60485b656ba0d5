package download

import (
	"context"

	"github.com/google/uuid"
	"github.com/lukman83/wb-scrap/internal/models"
	"go.uber.org/zap"
)

// Options for DownloadProduct.
type Options struct {
	Dir   string
	Size  string   // preset for the flat batch; empty means the source default
	Sizes []string // when set, one subdirectory per preset and Size is ignored
	Max   int      // per size; <= 0 means no extra cap
}

// DownloadProduct downloads a product's images and describes the run.
// With no sizes the files land directly in Dir and are reported under
// "default"; otherwise each size gets its own subdirectory.
func (d *Downloader) DownloadProduct(ctx context.Context, src ImageSource, opts Options) (*models.DownloadReport, error) {
	report := &models.DownloadReport{
		RunID:           uuid.NewString(),
		ProductID:       src.ID(),
		ProductName:     src.Name(),
		DownloadedFiles: []string{},
		DownloadInfo:    map[string][]string{},
	}
	log := d.log.With(zap.String("run_id", report.RunID), zap.Int64("product_id", report.ProductID))

	add := func(key string, res Result) {
		report.DownloadInfo[key] = res.Paths
		report.DownloadedFiles = append(report.DownloadedFiles, res.Paths...)
		for _, f := range res.Failures {
			report.Failures = append(report.Failures, models.DownloadFailure{
				URL:   f.URL,
				Path:  f.Path,
				Error: f.Err.Error(),
			})
		}
	}

	sizes := uniqueSizes(opts.Sizes)
	if len(sizes) == 0 {
		res, err := d.DownloadAll(ctx, src, opts.Dir, opts.Size, opts.Max)
		if err != nil {
			return nil, err
		}
		add("default", res)
	} else {
		results, err := d.DownloadBySize(ctx, src, opts.Dir, sizes, opts.Max)
		if err != nil {
			return nil, err
		}
		for _, size := range sizes {
			add(size, results[size])
		}
	}

	log.Info("images downloaded",
		zap.Int("written", len(report.DownloadedFiles)),
		zap.Int("failed", len(report.Failures)))
	return report, nil
}
