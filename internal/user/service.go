package user

import (
	"context"
	"strings"

	"tilemart-be/internal/activity"
	"tilemart-be/internal/auth"
	"tilemart-be/internal/utils"
)

type Service interface {
	Register(ctx context.Context, creds Credentials) (*User, error)
	Login(ctx context.Context, creds Credentials) (string, *User, error)
	Profile(ctx context.Context, email string) (*User, error)
	ChangePassword(ctx context.Context, email, newPassword string) error
	ListAccounts(ctx context.Context) ([]*UserAccount, error)
	ToggleBan(ctx context.Context, id uint) (*User, error)

	AdminLogin(ctx context.Context, creds Credentials) (string, *Admin, error)
	AdminChangePassword(ctx context.Context, email, newPassword string) error

	// UserExists and AdminExists satisfy verification.AccountDirectory.
	UserExists(ctx context.Context, email string) (bool, error)
	AdminExists(ctx context.Context, email string) (bool, error)
}

type service struct {
	repo       Repository
	activities activity.Service
}

func NewService(repo Repository, activities activity.Service) Service {
	return &service{repo: repo, activities: activities}
}

func validateCredentials(creds Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return ErrEmailRequired
	}
	if len(creds.Password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *service) Register(ctx context.Context, creds Credentials) (*User, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, strings.ToLower(strings.TrimSpace(creds.Email)), hashed)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, u.Email, "Created an account")
	return u, nil
}

// Login verifies credentials and returns a signed session token.
// Banned accounts are refused even with a correct password.
func (s *service) Login(ctx context.Context, creds Credentials) (string, *User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if err == ErrUserNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPasswordHash(creds.Password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	if u.Status == StatusBanned {
		return "", nil, ErrAccountBanned
	}

	token, err := auth.GenerateJWT(u.ID, utils.RoleUser, u.Email)
	if err != nil {
		return "", nil, err
	}

	s.activities.Record(ctx, u.Email, "Logged in")
	return token, u, nil
}

func (s *service) Profile(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) ChangePassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, email, hashed); err != nil {
		return err
	}

	s.activities.Record(ctx, email, "Changed password")
	return nil
}

func (s *service) ListAccounts(ctx context.Context) ([]*UserAccount, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ToggleBan(ctx context.Context, id uint) (*User, error) {
	return s.repo.ToggleStatus(ctx, id)
}

func (s *service) AdminLogin(ctx context.Context, creds Credentials) (string, *Admin, error) {
	a, err := s.repo.GetAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if err == ErrUserNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPasswordHash(creds.Password, a.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(a.ID, utils.RoleAdmin, a.Email)
	if err != nil {
		return "", nil, err
	}

	return token, a, nil
}

func (s *service) AdminChangePassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdateAdminPassword(ctx, email, hashed)
}

func (s *service) UserExists(ctx context.Context, email string) (bool, error) {
	return s.repo.Exists(ctx, email)
}

func (s *service) AdminExists(ctx context.Context, email string) (bool, error) {
	return s.repo.AdminExists(ctx, email)
}
