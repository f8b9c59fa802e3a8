package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"tilemart-be/internal/logger"
	"tilemart-be/internal/utils"

	"go.uber.org/zap"
)

// AccountDirectory answers whether an email belongs to an existing user or
// admin account. Implemented by the user service.
type AccountDirectory interface {
	UserExists(ctx context.Context, email string) (bool, error)
	AdminExists(ctx context.Context, email string) (bool, error)
}

type Service interface {
	RequestCode(ctx context.Context, email, role, purpose string) error
	VerifyCode(ctx context.Context, email, role, code string) error
}

type service struct {
	repo     Repository
	accounts AccountDirectory
	sender   Sender
	now      func() time.Time
}

func NewService(repo Repository, accounts AccountDirectory, sender Sender) Service {
	return &service{repo: repo, accounts: accounts, sender: sender, now: time.Now}
}

// RequestCode generates a six digit code and emails it. Registration codes
// are refused for taken emails; reset codes are refused for unknown ones.
func (s *service) RequestCode(ctx context.Context, email, role, purpose string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailRequired
	}

	exists, err := s.lookup(ctx, email, role)
	if err != nil {
		return err
	}

	switch purpose {
	case PurposeRegister:
		if exists {
			return ErrEmailRegistered
		}
	case PurposeResetPassword:
		if !exists {
			return ErrAccountNotFound
		}
	default:
		return ErrUnknownPurpose
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, &EmailCode{
		Email:     email,
		Role:      role,
		Code:      code,
		ExpiresAt: s.now().Add(codeTTL),
	}); err != nil {
		return err
	}

	if err := s.sender.SendCode(email, code); err != nil {
		logger.FromCtx(ctx).Error("verification mail failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return ErrSendFailed
	}

	return nil
}

// VerifyCode checks the pending code and consumes it on success.
func (s *service) VerifyCode(ctx context.Context, email, role, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	pending, err := s.repo.Get(ctx, email, role)
	if err != nil {
		return err
	}

	// Compare before the expiry check so a wrong guess reveals nothing about
	// the stored code's lifetime.
	if pending.Code != code {
		return ErrCodeMismatch
	}

	if s.now().After(pending.ExpiresAt) {
		_ = s.repo.Delete(ctx, email, role)
		return ErrCodeExpired
	}

	return s.repo.Delete(ctx, email, role)
}

func (s *service) lookup(ctx context.Context, email, role string) (bool, error) {
	if role == utils.RoleAdmin {
		return s.accounts.AdminExists(ctx, email)
	}
	return s.accounts.UserExists(ctx, email)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
