package order

import "errors"

var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrProductNotFound           = errors.New("product not found")
	ErrNoActiveAddress           = errors.New("no active delivery address")
	ErrEmptyOrder                = errors.New("order has no items")
	ErrInvalidQuantity           = errors.New("quantity must be at least 1")
	ErrInvalidStatus             = errors.New("unknown order status")
	ErrInvalidTransition         = errors.New("status transition not allowed")
	ErrEstimatedDeliveryRequired = errors.New("estimated delivery date is required for approval")
	ErrInsufficientStock         = errors.New("insufficient stock")
	ErrLockWait                  = errors.New("stock rows are locked, try again")
)
