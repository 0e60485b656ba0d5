package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lukman83/wb-scrap/config"
	"github.com/lukman83/wb-scrap/internal/download"
	"github.com/lukman83/wb-scrap/internal/httputil"
	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/lukman83/wb-scrap/internal/lookup"
	"github.com/lukman83/wb-scrap/internal/platform"
	"github.com/lukman83/wb-scrap/internal/stealth"
	"github.com/lukman83/wb-scrap/internal/wildberries"
	"github.com/lukman83/wb-scrap/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	cfg    *config.Config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:           "wbscrap",
	Short:         "wb-scrap - Wildberries product card CLI & MCP server",
	Long:          "A Go CLI tool and MCP server for reading Wildberries product cards and downloading their images.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Errorw("command failed", "command", os.Args[1:], "error", err)
	}
	_ = logger.Z().Sync()
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	f := rootCmd.PersistentFlags()
	f.String("platform", "wildberries", "Target catalog")
	f.String("city", "", "Delivery city or numeric dest code (default moscow)")
	f.Int("spp", wildberries.DefaultSPP, "Loyalty discount parameter")
	f.String("fetchers", "", "Fetcher chain, e.g. api or api,headless")
	f.Int("retries", 0, "Retries for the catalog request on 5xx or transport errors")
	f.String("data-file", "", "Lookup data file with cities and warehouses (yaml, json, toml); needed to classify seller warehouses")
	f.String("delay-profile", "", "Delay profile: off, cautious, normal, aggressive")
	f.Bool("respect-robots", true, "Respect robots.txt rules")
	f.String("proxy-file", "", "Path to proxy list file (one proxy per line)")
	f.String("log-mode", "", "Log mode: debug (console) or release (rotated JSON file)")
	f.String("log-dir", "", "Directory for release-mode log files")
}

// initConfig layers defaults, .env and WBSCRAP_* variables, then flags
// that were set explicitly.
func initConfig() {
	cfg = config.DefaultConfig()
	cfgErr = cfg.LoadFromEnv()

	f := rootCmd.PersistentFlags()
	if f.Changed("city") {
		cfg.City, _ = f.GetString("city")
	}
	if f.Changed("spp") {
		cfg.SPP, _ = f.GetInt("spp")
	}
	if f.Changed("fetchers") {
		v, _ := f.GetString("fetchers")
		cfg.Fetchers = config.SplitList(v)
	}
	if f.Changed("retries") {
		cfg.Retries, _ = f.GetInt("retries")
	}
	if f.Changed("data-file") {
		cfg.DataFile, _ = f.GetString("data-file")
	}
	if f.Changed("delay-profile") {
		cfg.DelayProfile, _ = f.GetString("delay-profile")
	}
	if f.Changed("respect-robots") {
		cfg.RespectRobots, _ = f.GetBool("respect-robots")
	}
	if f.Changed("proxy-file") {
		cfg.ProxyFile, _ = f.GetString("proxy-file")
		cfg.ProxyMode = "file"
	}
	if f.Changed("log-mode") {
		cfg.LogMode, _ = f.GetString("log-mode")
	}
	if f.Changed("log-dir") {
		cfg.LogDir, _ = f.GetString("log-dir")
	}
}

// app is what every command runs against once setup has succeeded.
type app struct {
	log        *zap.Logger
	downloader *download.Downloader
}

// setup validates config, starts logging, loads lookup tables and
// registers the catalogs.
func setup() (*app, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Init(cfg.LogMode, logger.Options{Dir: cfg.LogDir})

	table, err := lookup.Load(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	catalogClient, err := buildHTTPClient(true, log)
	if err != nil {
		return nil, err
	}
	imageClient, err := buildHTTPClient(false, log)
	if err != nil {
		return nil, err
	}

	var fetchers []wildberries.Fetcher
	for _, name := range cfg.Fetchers {
		switch name {
		case "api":
			fetchers = append(fetchers, wildberries.NewAPIFetcher(catalogClient, cfg.Retries))
		case "headless":
			fetchers = append(fetchers, wildberries.NewHeadlessFetcher(cfg.BrowserURL, cfg.RequestTimeout))
		}
	}
	platform.Register("wildberries", wildberries.NewClient(table, table,
		wildberries.WithFetchers(fetchers...),
		wildberries.WithLogger(log),
	))

	dl := download.New(imageClient,
		download.WithConcurrency(cfg.MaxConcurrent),
		download.WithRateLimiter(imageLimiter()),
		download.WithLogger(log),
	)
	log.Debug("setup complete",
		zap.Strings("fetchers", cfg.Fetchers),
		zap.String("city", cfg.City),
		zap.Strings("cities", table.Cities()))
	return &app{log: log, downloader: dl}, nil
}

// buildHTTPClient wraps the base transport in the stealth pipeline. The
// catalog client gets the full pipeline; the image client keeps only
// fingerprints and proxies, since the CDN serves static files.
func buildHTTPClient(catalog bool, log *zap.Logger) (*http.Client, error) {
	profile, err := stealth.ParseDelayProfile(cfg.DelayProfile)
	if err != nil {
		return nil, err
	}
	opts := stealth.Options{
		DelayProfile:  profile,
		RespectRobots: cfg.RespectRobots,
		RatePerSecond: cfg.RatePerSecond,
		RateBurst:     cfg.RateBurst,
		Log:           log,
	}
	if cfg.ProxyMode == "file" {
		opts.ProxyFile = cfg.ProxyFile
	}
	if !catalog {
		opts.DelayProfile = stealth.ProfileOff
		opts.RespectRobots = false
		opts.RatePerSecond = 0
	}

	transport, err := stealth.New(httputil.NewBaseTransport(), opts)
	if err != nil {
		return nil, err
	}
	timeout := cfg.RequestTimeout
	if !catalog {
		timeout = 2 * time.Minute
	}
	return httputil.NewHTTPClient(transport, timeout), nil
}

func (a *app) mcpDeps(platformName string) mcp.Deps {
	return mcp.Deps{
		Platform:   platformName,
		City:       cfg.City,
		SPP:        cfg.SPP,
		Downloader: a.downloader,
		ImagesDir:  cfg.ImagesDir,
		ImageSize:  cfg.ImageSize,
		MaxImages:  cfg.MaxImages,
		Log:        a.log,
	}
}

// imageLimiter paces image requests when a rate is configured.
func imageLimiter() *rate.Limiter {
	if cfg.RatePerSecond <= 0 {
		return nil
	}
	// Four times the catalog rate.
	return rate.NewLimiter(rate.Limit(cfg.RatePerSecond*4), cfg.MaxConcurrent+cfg.RateBurst)
}
