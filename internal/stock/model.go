package stock

import "time"

// Ledger change types. Add and update come from admin adjustments; ship
// entries are written by the order shipment transaction.
const (
	ChangeAdd    = "add"
	ChangeUpdate = "update"
	ChangeShip   = "ship"
)

// StockRecord is one append-only entry in the stock ledger. QuantityChanged
// is signed and always equals NewStock minus PreviousStock.
type StockRecord struct {
	ID              uint
	ProductID       uint
	ProductName     string
	ChangeType      string
	QuantityChanged int
	PreviousStock   int
	NewStock        int
	CreatedAt       time.Time
}
