package verification

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Repository interface {
	Upsert(ctx context.Context, code *EmailCode) error
	Get(ctx context.Context, email, role string) (*EmailCode, error)
	Delete(ctx context.Context, email, role string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Upsert(ctx context.Context, code *EmailCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_codes (email, role, code, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, role)
		DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
	`, code.Email, code.Role, code.Code, code.ExpiresAt)
	return err
}

func (r *repository) Get(ctx context.Context, email, role string) (*EmailCode, error) {
	var (
		c         EmailCode
		expiresAt time.Time
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT email, role, code, expires_at
		FROM email_codes
		WHERE email = $1 AND role = $2
	`, email, role).Scan(&c.Email, &c.Role, &c.Code, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPendingCode
	}
	if err != nil {
		return nil, err
	}

	c.ExpiresAt = expiresAt
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, email, role string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM email_codes WHERE email = $1 AND role = $2
	`, email, role)
	return err
}
