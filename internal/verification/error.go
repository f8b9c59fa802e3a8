package verification

import "errors"

var (
	ErrEmailRequired   = errors.New("email is required")
	ErrUnknownPurpose  = errors.New("unknown verification purpose")
	ErrEmailRegistered = errors.New("email is already registered")
	ErrAccountNotFound = errors.New("no account found for this email")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrNoPendingCode   = errors.New("no pending verification code")
	ErrSendFailed      = errors.New("failed to send verification email")
)
