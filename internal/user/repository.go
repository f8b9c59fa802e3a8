package user

import (
	"context"
	"database/sql"
	"errors"

	"tilemart-be/internal/db"
	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, email, hashedPassword string) (*User, error)
	UpdatePassword(ctx context.Context, email, hashedPassword string) error
	ListAll(ctx context.Context) ([]*UserAccount, error)
	ToggleStatus(ctx context.Context, id uint) (*User, error)
	Exists(ctx context.Context, email string) (bool, error)

	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	UpdateAdminPassword(ctx context.Context, email, hashedPassword string) error
	AdminExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, status, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Password, &u.Status, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, status, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Password, &u.Status, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) Create(ctx context.Context, email, hashedPassword string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "Create"),
		zap.String("email", email),
	)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, status)
		VALUES ($1, $2, $3)
		RETURNING id, email, password, status, created_at
	`, email, hashedPassword, StatusActive).
		Scan(&u.ID, &u.Email, &u.Password, &u.Status, &u.CreatedAt)

	if db.IsUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, err
	}

	return &u, nil
}

func (r *repository) UpdatePassword(ctx context.Context, email, hashedPassword string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password = $1 WHERE email = $2
	`, hashedPassword, email)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListAll returns every user with their active delivery address, newest first.
func (r *repository) ListAll(ctx context.Context) ([]*UserAccount, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "ListAll"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.status, u.created_at,
			COALESCE(
				NULLIF(TRIM(CONCAT_WS(', ',
					NULLIF(a.house_number, ''), NULLIF(a.street, ''),
					NULLIF(a.barangay, ''), NULLIF(a.city, ''),
					NULLIF(a.province, ''))), ''),
				'')
		FROM users u
		LEFT JOIN addresses a ON a.user_id = u.id AND a.is_active = true
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*UserAccount
	for rows.Next() {
		var ua UserAccount
		if err := rows.Scan(&ua.ID, &ua.Email, &ua.Status, &ua.CreatedAt, &ua.DeliveryLocation); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &ua)
	}

	return res, rows.Err()
}

func (r *repository) ToggleStatus(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET status = CASE WHEN status = $1 THEN $2 ELSE $1 END
		WHERE id = $3
		RETURNING id, email, password, status, created_at
	`, StatusActive, StatusBanned, id).
		Scan(&u.ID, &u.Email, &u.Password, &u.Status, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func (r *repository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password FROM admins WHERE email = $1
	`, email).Scan(&a.ID, &a.Email, &a.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) UpdateAdminPassword(ctx context.Context, email, hashedPassword string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE admins SET password = $1 WHERE email = $2
	`, hashedPassword, email)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) AdminExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}
