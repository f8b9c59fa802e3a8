package user

import "time"

const (
	StatusActive = "Active"
	StatusBanned = "Banned"
)

type User struct {
	ID        uint
	Email     string
	Password  string
	Status    string
	CreatedAt time.Time
}

type Admin struct {
	ID       uint
	Email    string
	Password string
}

// UserAccount is the admin-facing listing row. DeliveryLocation is the
// user's active address rendered as a single line, empty when none is set.
type UserAccount struct {
	ID               uint
	Email            string
	Status           string
	CreatedAt        time.Time
	DeliveryLocation string
}

type Credentials struct {
	Email    string
	Password string
}
