package sales

import (
	"context"
	"database/sql"
	"time"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]*SaleRecord, error)
	Summary(ctx context.Context, start, end time.Time) (revenue float64, quantity int, orders int, err error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error)
	DailyTotals(ctx context.Context, start, end time.Time) (map[string]DailyPerformance, error)
	TotalSoldByProduct(ctx context.Context, productID uint) (int, error)
	LowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error)
	CountOrdersByStatus(ctx context.Context, status string) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) ListBetween(ctx context.Context, start, end time.Time) ([]*SaleRecord, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Sales"),
		zap.String("method", "ListBetween"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, customer_email, product_name, quantity, unit_price, total, sold_at
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		ORDER BY sold_at DESC
	`, start, end)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*SaleRecord
	for rows.Next() {
		var s SaleRecord
		if err := rows.Scan(
			&s.ID, &s.OrderID, &s.ProductID, &s.CustomerEmail, &s.ProductName,
			&s.Quantity, &s.UnitPrice, &s.Total, &s.SoldAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &s)
	}

	return res, rows.Err()
}

func (r *repository) Summary(ctx context.Context, start, end time.Time) (float64, int, int, error) {
	var (
		revenue  float64
		quantity int
		orders   int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(quantity), 0), COUNT(DISTINCT order_id)
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
	`, start, end).Scan(&revenue, &quantity, &orders)
	if err != nil {
		return 0, 0, 0, err
	}
	return revenue, quantity, orders, nil
}

func (r *repository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, SUM(quantity), SUM(total)
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		GROUP BY product_id, product_name
		ORDER BY SUM(quantity) DESC
		LIMIT $3
	`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

// DailyTotals groups sales by calendar day, keyed by YYYY-MM-DD.
func (r *repository) DailyTotals(ctx context.Context, start, end time.Time) (map[string]DailyPerformance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DATE(sold_at), COALESCE(SUM(total), 0), COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		GROUP BY DATE(sold_at)
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]DailyPerformance)
	for rows.Next() {
		var (
			day time.Time
			d   DailyPerformance
		)
		if err := rows.Scan(&day, &d.Revenue, &d.Quantity); err != nil {
			return nil, err
		}
		d.Date = day
		res[day.Format("2006-01-02")] = d
	}

	return res, rows.Err()
}

func (r *repository) TotalSoldByProduct(ctx context.Context, productID uint) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM sales WHERE product_id = $1
	`, productID).Scan(&total)
	return total, err
}

func (r *repository) LowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, stock
		FROM products
		WHERE is_archived = false AND stock < $1
		ORDER BY stock, id
	`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LowStockProduct
	for rows.Next() {
		var p LowStockProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Stock); err != nil {
			return nil, err
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

func (r *repository) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE status = $1
	`, status).Scan(&n)
	return n, err
}
