package platform

import (
	"context"
	"testing"
)

type nopCatalog struct{ name string }

func (n nopCatalog) Name() string { return n.name }
func (n nopCatalog) Product(context.Context, int64, ProductOpts) (Product, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register("zeta", nopCatalog{"zeta"})
	Register("alpha", nopCatalog{"alpha"})

	c, err := Get("alpha")
	if err != nil || c.Name() != "alpha" {
		t.Fatalf("Get(alpha) = %v, %v", c, err)
	}
	if _, err := Get("missing"); err == nil {
		t.Fatalf("expected error for unregistered catalog")
	}

	names := List()
	if len(names) < 2 || names[0] != "alpha" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestReportProgress(t *testing.T) {
	var got string
	ctx := WithProgress(context.Background(), func(msg string) { got = msg })
	ReportProgress(ctx, "hello")
	if got != "hello" {
		t.Fatalf("progress callback not called, got %q", got)
	}
	// No callback: must not panic.
	ReportProgress(context.Background(), "ignored")
}
