package product

// Product is a catalog tile. Archived products stay out of public listings
// but remain referenced by historical order items and sales.
type Product struct {
	ID          uint
	Image       *string
	Category    string
	Type        string
	Name        string
	Description string
	Price       float64
	Stock       int
	IsArchived  bool
}

type NewProductInput struct {
	Image       *string
	Category    string
	Type        string
	Name        string
	Description string
	Price       float64
	Stock       int
}

type UpdateProductInput struct {
	Image       *string
	Category    *string
	Type        *string
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}
