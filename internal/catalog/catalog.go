package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
)

//go:embed seed.json
var seedJSON []byte

// Catalog is the immutable, ordered product list loaded once per process.
type Catalog struct {
	products []Product
	index    map[string]int
}

// New builds a catalog from an ordered product list. Ids must be unique and non-empty.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("product at position %d has no id", i)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("duplicate product id %q", id)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has a negative price", id)
		}
		p.ID = id
		if p.Sale != nil {
			sale := *p.Sale
			p.Sale = &sale
		}
		c.index[id] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Load reads a JSON catalog from path, or the embedded seed catalog when path is empty.
func Load(path string) (*Catalog, error) {
	raw := seedJSON
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		raw = data
	}
	return Parse(raw)
}

// Parse decodes a JSON array of products.
func Parse(raw []byte) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(products)
}

// Products returns a copy of the catalog in its natural order.
func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Find looks a product up by id.
func (c *Catalog) Find(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Snapshot returns denormalized display fields for id, or a placeholder
// (zero price, empty image) when the id is unknown.
func (c *Catalog) Snapshot(id string) Snapshot {
	if p, ok := c.Find(id); ok {
		return p.Snapshot()
	}
	return Placeholder(id)
}

// Categories lists the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
