package product

import (
	"context"
	"database/sql"
	"errors"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error)
	List(ctx context.Context, includeArchived bool) ([]*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uint) error
	ToggleArchive(ctx context.Context, id uint) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, image, category, type, name, description, price, stock, is_archived
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Image, &p.Category, &p.Type,
		&p.Name, &p.Description, &p.Price, &p.Stock, &p.IsArchived,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "GetByID"),
		zap.Uint("product_id", id),
	)

	query := `SELECT` + productColumns + `FROM products WHERE id = $1`
	if onlyActive {
		query += ` AND is_archived = false`
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) List(ctx context.Context, includeArchived bool) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "List"),
		zap.Bool("include_archived", includeArchived),
	)

	query := `SELECT` + productColumns + `FROM products`
	if !includeArchived {
		query += ` WHERE is_archived = false`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (image, category, type, name, description, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+productColumns,
		input.Image, input.Category, input.Type,
		input.Name, input.Description, input.Price, input.Stock,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET image       = COALESCE($1, image),
		    category    = COALESCE($2, category),
		    type        = COALESCE($3, type),
		    name        = COALESCE($4, name),
		    description = COALESCE($5, description),
		    price       = COALESCE($6, price),
		    stock       = COALESCE($7, stock)
		WHERE id = $8
		RETURNING`+productColumns,
		input.Image, input.Category, input.Type,
		input.Name, input.Description, input.Price, input.Stock, id,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}

	return p, nil
}

// Delete removes a product and its cart rows in one transaction. Products
// referenced by order items are refused: order history must keep a valid
// product id to point at. Stock ledger rows carry no FK and survive.
func (r *repository) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Delete"),
		zap.Uint("product_id", id),
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

	var referenced bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)
	`, id).Scan(&referenced)
	if err != nil {
		log.Error("reference check failed", zap.Error(err))
		return err
	}
	if referenced {
		return ErrProductReferenced
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE product_id = $1`, id); err != nil {
		log.Error("cart cleanup failed", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("product deleted")
	return nil
}

func (r *repository) ToggleArchive(ctx context.Context, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "ToggleArchive"),
		zap.Uint("product_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET is_archived = NOT is_archived
		WHERE id = $1
		RETURNING`+productColumns, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}

	return p, nil
}
