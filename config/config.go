package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "WBSCRAP_"

// Config holds all application configuration.
type Config struct {
	// Catalog
	City     string // destination city, or a numeric dest code
	SPP      int
	Fetchers []string // "api", "headless"
	Retries  int
	DataFile string // lookup tables (yaml, json or toml)

	// Politeness
	DelayProfile   string // "off", "cautious", "normal", "aggressive"
	RespectRobots  bool
	RatePerSecond  float64
	RateBurst      int
	MaxConcurrent  int
	RequestTimeout time.Duration

	// Proxy
	ProxyMode string // "direct" or "file"
	ProxyFile string

	// Headless
	BrowserURL string // remote Chromium launcher; empty starts a local one

	// Images
	ImagesDir string
	ImageSize string
	MaxImages int

	// Logging
	LogMode string // "debug" or "release"
	LogDir  string

	// HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		City:           "moscow",
		SPP:            30,
		Fetchers:       []string{"api"},
		DelayProfile:   "normal",
		RespectRobots:  true,
		RatePerSecond:  2.0,
		RateBurst:      3,
		MaxConcurrent:  8,
		RequestTimeout: 30 * time.Second,
		ProxyMode:      "direct",
		ImagesDir:      "images",
		ImageSize:      "c516x688",
		MaxImages:      10,
		LogMode:        "release",
		HTTPPort:       "8080",
	}
}

// LoadFromEnv loads .env (if present) then overrides config from WBSCRAP_*
// environment variables. Unparseable numbers are reported, not ignored.
func (c *Config) LoadFromEnv() error {
	_ = godotenv.Load()

	var errs []string
	str := func(key string, dst *string) {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(envPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, envPrefix+key)
				return
			}
			*dst = n
		}
	}

	str("CITY", &c.City)
	num("SPP", &c.SPP)
	num("RETRIES", &c.Retries)
	str("DATA_FILE", &c.DataFile)
	str("DELAY_PROFILE", &c.DelayProfile)
	num("RATE_BURST", &c.RateBurst)
	num("MAX_CONCURRENT", &c.MaxConcurrent)
	str("PROXY_MODE", &c.ProxyMode)
	str("PROXY_FILE", &c.ProxyFile)
	str("BROWSER_URL", &c.BrowserURL)
	str("IMAGES_DIR", &c.ImagesDir)
	str("IMAGE_SIZE", &c.ImageSize)
	num("MAX_IMAGES", &c.MaxImages)
	str("LOG_MODE", &c.LogMode)
	str("LOG_DIR", &c.LogDir)
	str("API_KEY", &c.APIKey)

	if v := os.Getenv(envPrefix + "FETCHERS"); v != "" {
		c.Fetchers = SplitList(v)
	}
	if v := os.Getenv(envPrefix + "RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		} else {
			errs = append(errs, envPrefix+"RATE_PER_SECOND")
		}
	}
	if v := os.Getenv(envPrefix + "REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		} else {
			errs = append(errs, envPrefix+"REQUEST_TIMEOUT")
		}
	}
	if v := os.Getenv(envPrefix + "RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	// PORT wins so platform-assigned ports work unchanged.
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	} else {
		str("HTTP_PORT", &c.HTTPPort)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid value for %s", strings.Join(errs, ", "))
	}
	return nil
}

// Validate checks cross-field constraints after env and flags are applied.
func (c *Config) Validate() error {
	if len(c.Fetchers) == 0 {
		return fmt.Errorf("at least one fetcher is required")
	}
	for _, f := range c.Fetchers {
		if f != "api" && f != "headless" {
			return fmt.Errorf("unknown fetcher %q", f)
		}
	}
	switch c.ProxyMode {
	case "direct":
	case "file":
		if c.ProxyFile == "" {
			return fmt.Errorf("proxy mode %q needs a proxy file", c.ProxyMode)
		}
	default:
		return fmt.Errorf("unknown proxy mode %q", c.ProxyMode)
	}
	if c.SPP < 0 || c.Retries < 0 || c.MaxConcurrent < 0 {
		return fmt.Errorf("spp, retries and max concurrent must not be negative")
	}
	return nil
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
