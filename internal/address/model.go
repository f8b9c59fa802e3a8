package address

// Address is a delivery address. At most one address per user is active;
// the active one is snapshotted onto orders at placement time.
type Address struct {
	ID          uint
	UserID      uint
	HouseNumber string
	Street      string
	Barangay    string
	City        string
	Province    string
	IsActive    bool
}

type CreateAddressInput struct {
	HouseNumber string
	Street      string
	Barangay    string
	City        string
	Province    string
}
