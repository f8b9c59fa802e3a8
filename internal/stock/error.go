package stock

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidAmount   = errors.New("amount must be at least 1")
	ErrNegativeStock   = errors.New("stock cannot be negative")
	ErrLockWait        = errors.New("stock row is locked, try again")
)
