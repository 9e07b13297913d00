package domain

// Product is a catalog row. The application never mutates products,
// they are seeded by migration. Price is in whole currency units.
type Product struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Color  string `json:"color"`
	Size   string `json:"size"`
	Image  string `json:"image"`
	Design string `json:"design,omitempty"`
}
