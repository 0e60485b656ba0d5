package lookup

import (
	"fmt"
	"strings"

	"github.com/lukman83/wb-scrap/internal/models"
	"github.com/spf13/viper"
)

// dataFile is the on-disk shape of a lookup data file, e.g.
//
//	replace: false
//	destinations:
//	  kazan: -2133462
//	warehouses:
//	  - {id: 507, name: Koledino, kind: platform}
//	  - {id: 1193, name: Seller FBS, kind: seller}
type dataFile struct {
	Replace      bool             `mapstructure:"replace"`
	Destinations map[string]int64 `mapstructure:"destinations"`
	Warehouses   []warehouseEntry `mapstructure:"warehouses"`
}

type warehouseEntry struct {
	ID   int64  `mapstructure:"id"`
	Name string `mapstructure:"name"`
	Kind string `mapstructure:"kind"`
}

// Load reads a YAML, JSON or TOML data file and merges it over the built-in
// table, or replaces the built-in table when the file sets replace: true.
// An empty path returns the defaults.
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	// City names may contain dots, so keep viper from treating them as nesting.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read lookup data %s: %w", path, err)
	}

	var data dataFile
	if err := v.Unmarshal(&data); err != nil {
		return nil, fmt.Errorf("decode lookup data %s: %w", path, err)
	}

	warehouses := make([]Warehouse, 0, len(data.Warehouses))
	for _, w := range data.Warehouses {
		if w.ID == 0 {
			return nil, fmt.Errorf("lookup data %s: warehouse without id", path)
		}
		warehouses = append(warehouses, Warehouse{
			ID:   w.ID,
			Name: w.Name,
			Kind: models.ParseWarehouseKind(strings.ToLower(strings.TrimSpace(w.Kind))),
		})
	}

	if data.Replace {
		return NewTable(data.Destinations, warehouses), nil
	}
	t := Default()
	t.Merge(data.Destinations, warehouses)
	return t, nil
}
