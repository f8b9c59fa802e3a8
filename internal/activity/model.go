package activity

import "time"

// RecentActivity is a human-readable audit line shown on the admin dashboard.
type RecentActivity struct {
	ID        uint
	Email     string
	Activity  string
	CreatedAt time.Time
}
