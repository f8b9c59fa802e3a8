package order

import "time"

// OrderStatus is the lifecycle state of an order. Shipped and Rejected are
// terminal; no transition leaves them.
type OrderStatus string

const (
	StatusPending  OrderStatus = "Pending"
	StatusApproved OrderStatus = "Approved"
	StatusShipped  OrderStatus = "Shipped"
	StatusRejected OrderStatus = "Rejected"
)

// ParseStatus validates a raw status string from a request.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusApproved, StatusShipped, StatusRejected:
		return OrderStatus(s), nil
	}
	return "", ErrInvalidStatus
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusShipped || s == StatusRejected
}

// CanTransitionTo reports whether the fulfillment flow allows moving from s
// to next. Pending may be approved, shipped directly, or rejected; Approved
// may be shipped or rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusShipped || next == StatusRejected
	case StatusApproved:
		return next == StatusShipped || next == StatusRejected
	}
	return false
}

// AddressSnapshot is the delivery address copied onto the order at placement.
// Later edits to the user's addresses do not touch it.
type AddressSnapshot struct {
	HouseNumber string
	Street      string
	Barangay    string
	City        string
	Province    string
}

// ProductSnapshot is the product state copied onto an order item at
// placement. Price changes after placement do not affect the order.
type ProductSnapshot struct {
	Name     string
	Category string
	Type     string
	Image    string
	Price    float64
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Product   ProductSnapshot
	Subtotal  float64
}

type Order struct {
	ID                uint
	UserID            uint
	UserEmail         string
	Status            OrderStatus
	Address           AddressSnapshot
	Total             float64
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	Items             []OrderItem
}

// OrderLogEntry is a denormalized copy of one order item, written when the
// order ships, is rejected, or is deleted by an admin. The copies keep the
// audit trail readable after the order itself is gone. CreatedAt carries the
// order's creation time, not the log write time.
type OrderLogEntry struct {
	ID                uint
	OrderID           uint
	UserEmail         string
	Status            OrderStatus
	EstimatedDelivery *time.Time
	Address           AddressSnapshot
	ProductID         uint
	Quantity          int
	Product           ProductSnapshot
	CreatedAt         time.Time
}

type PlaceOrderItem struct {
	ProductID uint
	Quantity  int
}

type PlaceOrderParams struct {
	UserID    uint
	UserEmail string
	Address   AddressSnapshot
	Items     []PlaceOrderItem
}
