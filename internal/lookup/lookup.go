// Package lookup holds the static reference data the catalog needs but does
// not serve: delivery destination codes by city and warehouse names by id.
package lookup

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lukman83/wb-scrap/internal/models"
)

// Warehouse is one known stock location.
type Warehouse struct {
	ID   int64
	Name string
	Kind models.WarehouseKind
}

// Table maps city names to destination codes and warehouse ids to
// warehouses. Safe for concurrent use.
type Table struct {
	mu           sync.RWMutex
	destinations map[string]int64
	warehouses   map[int64]Warehouse
}

// NewTable builds a table from the given data. City names are matched
// case-insensitively.
func NewTable(destinations map[string]int64, warehouses []Warehouse) *Table {
	t := &Table{
		destinations: make(map[string]int64, len(destinations)),
		warehouses:   make(map[int64]Warehouse, len(warehouses)),
	}
	t.Merge(destinations, warehouses)
	return t
}

// Default returns the built-in table.
func Default() *Table {
	return NewTable(defaultDestinations, defaultWarehouses)
}

// Merge adds or replaces entries.
func (t *Table) Merge(destinations map[string]int64, warehouses []Warehouse) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for city, code := range destinations {
		t.destinations[normalizeCity(city)] = code
	}
	for _, w := range warehouses {
		t.warehouses[w.ID] = w
	}
}

// Destination resolves a city to its destination code. A numeric string is
// taken as a code as-is.
func (t *Table) Destination(city string) (int64, bool) {
	key := normalizeCity(city)
	if code, err := strconv.ParseInt(key, 10, 64); err == nil {
		return code, true
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	code, ok := t.destinations[key]
	return code, ok
}

// Cities lists known city keys.
func (t *Table) Cities() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.destinations))
	for c := range t.destinations {
		out = append(out, c)
	}
	return out
}

func (t *Table) Warehouse(id int64) (Warehouse, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	w, ok := t.warehouses[id]
	return w, ok
}

// ClassifyWarehouse returns a display name and kind for any id; unknown
// ids get a generic name and WarehouseUnknown.
func (t *Table) ClassifyWarehouse(id int64) (string, models.WarehouseKind) {
	if w, ok := t.Warehouse(id); ok {
		return w.Name, w.Kind
	}
	return fmt.Sprintf("Warehouse %d", id), models.WarehouseUnknown
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var defaultDestinations = map[string]int64{
	"moscow": -1257786,
	"москва": -1257786,
}

var defaultWarehouses = []Warehouse{
	{ID: 507, Name: "Koledino", Kind: models.WarehousePlatform},
	{ID: 686, Name: "Novosibirsk", Kind: models.WarehousePlatform},
	{ID: 1733, Name: "Yekaterinburg", Kind: models.WarehousePlatform},
	{ID: 117986, Name: "Kazan", Kind: models.WarehousePlatform},
	{ID: 120762, Name: "Elektrostal", Kind: models.WarehousePlatform},
	{ID: 130744, Name: "Krasnodar", Kind: models.WarehousePlatform},
	{ID: 206348, Name: "Tula", Kind: models.WarehousePlatform},
}
