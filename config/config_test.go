package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("WBSCRAP_CITY", "kazan")
	t.Setenv("WBSCRAP_SPP", "10")
	t.Setenv("WBSCRAP_FETCHERS", "api, headless,")
	t.Setenv("WBSCRAP_REQUEST_TIMEOUT", "5s")
	t.Setenv("WBSCRAP_RESPECT_ROBOTS", "false")
	t.Setenv("WBSCRAP_RATE_PER_SECOND", "0.5")
	t.Setenv("PORT", "9090")

	c := DefaultConfig()
	if err := c.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if c.City != "kazan" || c.SPP != 10 || c.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected config %+v", c)
	}
	if len(c.Fetchers) != 2 || c.Fetchers[1] != "headless" {
		t.Fatalf("unexpected fetchers %v", c.Fetchers)
	}
	if c.RespectRobots || c.RatePerSecond != 0.5 || c.HTTPPort != "9090" {
		t.Fatalf("unexpected config %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadFromEnvReportsBadNumbers(t *testing.T) {
	t.Setenv("WBSCRAP_SPP", "thirty")
	c := DefaultConfig()
	if err := c.LoadFromEnv(); err == nil {
		t.Fatalf("expected error for non-numeric spp")
	}
	if c.SPP != 30 {
		t.Fatalf("bad value must keep the default, got %d", c.SPP)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"no fetchers":     func(c *Config) { c.Fetchers = nil },
		"unknown fetcher": func(c *Config) { c.Fetchers = []string{"grpc"} },
		"file no path":    func(c *Config) { c.ProxyMode = "file" },
		"bad proxy mode":  func(c *Config) { c.ProxyMode = "decodo" },
		"negative spp":    func(c *Config) { c.SPP = -1 },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
