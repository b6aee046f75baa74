package catalog

// Product is one catalog record. Prices are in the smallest currency unit.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	// Sale is the pre-discount anchor price. Producers keep it above Price; the
	// engine only reads it.
	Sale  *int64 `json:"sale,omitempty"`
	Image string `json:"image"`
}

// OnSale reports whether the product carries a sale anchor above its price.
func (p Product) OnSale() bool {
	return p.Sale != nil && *p.Sale > p.Price
}

// Snapshot copies the display fields that stores denormalize at add time.
func (p Product) Snapshot() Snapshot {
	return Snapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Image:     p.Image,
	}
}

// Snapshot is the denormalized display data stored alongside a product id.
// It may go stale when the catalog changes.
type Snapshot struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
}

// Placeholder is the snapshot used for ids the catalog does not know.
func Placeholder(id string) Snapshot {
	return Snapshot{ProductID: id, Name: id}
}
