package cart

import (
	"context"
	"database/sql"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByUser(ctx context.Context, userEmail string) ([]*CartView, error)
	UpsertLine(ctx context.Context, params AddToCartParams) (*CartLine, error)
	RemoveLine(ctx context.Context, userEmail string, productID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUser(ctx context.Context, userEmail string) ([]*CartView, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "GetByUser"),
		zap.String("user_email", userEmail),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.product_id,
			COALESCE(p.image, ''),
			p.category,
			p.type,
			p.name,
			p.price,
			p.stock,
			c.quantity
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_email = $1
		ORDER BY c.id
	`, userEmail)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*CartView
	for rows.Next() {
		var v CartView
		if err := rows.Scan(
			&v.ProductID, &v.Image, &v.Category, &v.Type,
			&v.Name, &v.Price, &v.Stock, &v.Quantity,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &v)
	}

	return res, rows.Err()
}

// UpsertLine inserts a new cart line or adds to an existing one. The upsert
// keeps concurrent adds to the same (user, product) pair from tripping the
// unique constraint.
func (r *repository) UpsertLine(ctx context.Context, params AddToCartParams) (*CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Cart"),
		zap.String("method", "UpsertLine"),
		zap.String("user_email", params.UserEmail),
		zap.Uint("product_id", params.ProductID),
	)

	var line CartLine
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_email, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_email, product_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity
		RETURNING id, user_email, product_id, quantity
	`, params.UserEmail, params.ProductID, params.Quantity).
		Scan(&line.ID, &line.UserEmail, &line.ProductID, &line.Quantity)
	if err != nil {
		log.Error("upsert failed", zap.Error(err))
		return nil, err
	}

	return &line, nil
}

func (r *repository) RemoveLine(ctx context.Context, userEmail string, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_email = $1 AND product_id = $2
	`, userEmail, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}
