package address

import "errors"

var (
	ErrAddressNotFound  = errors.New("address not found")
	ErrNoActiveAddress  = errors.New("no active address found")
	ErrStreetRequired   = errors.New("street is required")
	ErrCityRequired     = errors.New("city is required")
	ErrProvinceRequired = errors.New("province is required")
)
