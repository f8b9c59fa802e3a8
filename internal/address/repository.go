package address

import (
	"context"
	"database/sql"
	"errors"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id uint) (*Address, error)
	GetActiveByUser(ctx context.Context, userID uint) (*Address, error)
	Create(ctx context.Context, addr *Address) error
	SetActive(ctx context.Context, userID, addressID uint) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id, house_number, street, barangay, city, province, is_active
`

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "ListByUser"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT`+addressColumns+`
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_active DESC, id
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.HouseNumber, &a.Street,
			&a.Barangay, &a.City, &a.Province, &a.IsActive,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Address, error) {
	var a Address
	err := r.db.QueryRowContext(ctx, `
		SELECT`+addressColumns+`
		FROM addresses
		WHERE id = $1
	`, id).Scan(
		&a.ID, &a.UserID, &a.HouseNumber, &a.Street,
		&a.Barangay, &a.City, &a.Province, &a.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) GetActiveByUser(ctx context.Context, userID uint) (*Address, error) {
	var a Address
	err := r.db.QueryRowContext(ctx, `
		SELECT`+addressColumns+`
		FROM addresses
		WHERE user_id = $1 AND is_active = true
		LIMIT 1
	`, userID).Scan(
		&a.ID, &a.UserID, &a.HouseNumber, &a.Street,
		&a.Barangay, &a.City, &a.Province, &a.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveAddress
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.Uint("user_id", addr.UserID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (user_id, house_number, street, barangay, city, province, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id
	`, addr.UserID, addr.HouseNumber, addr.Street, addr.Barangay, addr.City, addr.Province).
		Scan(&addr.ID)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

// SetActive makes addressID the user's only active address. Both statements
// run in one transaction so there is never more than one active row.
func (r *repository) SetActive(ctx context.Context, userID, addressID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "SetActive"),
		zap.Uint("user_id", userID),
		zap.Uint("address_id", addressID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		UPDATE addresses SET is_active = false WHERE user_id = $1
	`, userID); err != nil {
		log.Error("clear active failed", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE addresses SET is_active = true WHERE id = $1 AND user_id = $2
	`, addressID, userID)
	if err != nil {
		log.Error("set active failed", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

func (r *repository) Deactivate(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET is_active = false WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAddressNotFound
	}

	return nil
}
