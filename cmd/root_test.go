package cmd

import (
	"strings"
	"testing"
)

func TestParseProductID(t *testing.T) {
	if id, err := parseProductID("241779009"); err != nil || id != 241779009 {
		t.Fatalf("parseProductID: %d %v", id, err)
	}
	for _, bad := range []string{"", "abc", "-5", "0"} {
		if _, err := parseProductID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestInitConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("WBSCRAP_CITY", "kazan")
	t.Setenv("WBSCRAP_SPP", "15")

	f := rootCmd.PersistentFlags()
	if err := f.Set("spp", "5"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := f.Set("fetchers", "api,headless"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	t.Cleanup(func() {
		_ = f.Set("spp", "30")
		_ = f.Set("fetchers", "api")
	})

	initConfig()
	if cfgErr != nil {
		t.Fatalf("initConfig: %v", cfgErr)
	}
	if cfg.City != "kazan" {
		t.Fatalf("env city lost: %q", cfg.City)
	}
	if cfg.SPP != 5 {
		t.Fatalf("flag should win over env, spp = %d", cfg.SPP)
	}
	if len(cfg.Fetchers) != 2 {
		t.Fatalf("unexpected fetchers %v", cfg.Fetchers)
	}
}

func TestProductHelpNamesSellerDataFile(t *testing.T) {
	if !strings.Contains(productCmd.Long, "--data-file") || !strings.Contains(productCmd.Long, "kind: seller") {
		t.Fatalf("product help must explain how seller warehouses are classified:\n%s", productCmd.Long)
	}
	flag := rootCmd.PersistentFlags().Lookup("data-file")
	if flag == nil || !strings.Contains(flag.Usage, "seller") {
		t.Fatalf("--data-file usage should mention seller warehouses")
	}
}
