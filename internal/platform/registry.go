package platform

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Catalog)
	mu       sync.RWMutex
)

// Register makes a catalog available under name, replacing any previous one.
func Register(name string, c Catalog) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = c
}

func Get(name string) (Catalog, error) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("catalog %q not registered", name)
	}
	return c, nil
}

// List returns registered names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
