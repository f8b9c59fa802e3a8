package cart

// CartLine is one product entry in a user's cart, unique per
// (user_email, product_id).
type CartLine struct {
	ID        uint
	UserEmail string
	ProductID uint
	Quantity  int
}

// CartView is a cart line joined with live product data for display.
type CartView struct {
	ProductID uint
	Image     string
	Category  string
	Type      string
	Name      string
	Price     float64
	Stock     int
	Quantity  int
}

type AddToCartParams struct {
	UserEmail string
	ProductID uint
	Quantity  int
}
