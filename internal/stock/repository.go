package stock

import (
	"context"
	"database/sql"
	"errors"

	"tilemart-be/internal/db"
	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Adjust(ctx context.Context, productID uint, changeType string, amount int) (*StockRecord, error)
	ListRecords(ctx context.Context) ([]*StockRecord, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

// Adjust changes a product's stock and appends the ledger entry in one
// transaction. The product row is locked first so concurrent shipments and
// adjustments serialize against each other.
func (r *repository) Adjust(ctx context.Context, productID uint, changeType string, amount int) (*StockRecord, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Stock"),
		zap.String("method", "Adjust"),
		zap.Uint("product_id", productID),
		zap.String("change_type", changeType),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		name  string
		stock int
	)
	err = tx.QueryRowContext(ctx, `
		SELECT name, stock FROM products WHERE id = $1 FOR UPDATE
	`, productID).Scan(&name, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if db.IsLockTimeout(err) {
		log.Warn("lock wait exceeded")
		return nil, ErrLockWait
	}
	if err != nil {
		log.Error("stock read failed", zap.Error(err))
		return nil, err
	}

	var newStock int
	switch changeType {
	case ChangeAdd:
		newStock = stock + amount
	case ChangeUpdate:
		newStock = amount
	default:
		return nil, errors.New("unknown change type: " + changeType)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE products SET stock = $1 WHERE id = $2
	`, newStock, productID); err != nil {
		log.Error("stock update failed", zap.Error(err))
		return nil, err
	}

	rec := &StockRecord{
		ProductID:       productID,
		ProductName:     name,
		ChangeType:      changeType,
		QuantityChanged: newStock - stock,
		PreviousStock:   stock,
		NewStock:        newStock,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO stock_records (product_id, product_name, change_type, quantity_changed, previous_stock, new_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, rec.ProductID, rec.ProductName, rec.ChangeType, rec.QuantityChanged, rec.PreviousStock, rec.NewStock).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		log.Error("record insert failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return rec, nil
}

// ListRecords returns the full ledger, newest first. Product names are
// stored on the record itself so deleted products keep their history.
func (r *repository) ListRecords(ctx context.Context) ([]*StockRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, product_name, change_type, quantity_changed, previous_stock, new_stock, created_at
		FROM stock_records
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*StockRecord
	for rows.Next() {
		var rec StockRecord
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.ProductName, &rec.ChangeType,
			&rec.QuantityChanged, &rec.PreviousStock, &rec.NewStock, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &rec)
	}

	return res, rows.Err()
}
