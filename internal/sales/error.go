package sales

import "errors"

var ErrInvalidDateRange = errors.New("end date is before start date")
