package verification

import "time"

// Code purposes. Registration requires the email to be new; password reset
// requires an existing account for the requested role.
const (
	PurposeRegister      = "register"
	PurposeResetPassword = "reset_password"
)

const codeTTL = 5 * time.Minute

// EmailCode is a pending verification code. One row exists per email and
// role pair; requesting a new code replaces the old one.
type EmailCode struct {
	Email     string
	Role      string
	Code      string
	ExpiresAt time.Time
}
