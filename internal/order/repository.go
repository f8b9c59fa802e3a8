package order

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"tilemart-be/internal/db"
	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint, excludeTerminal bool) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	Approve(ctx context.Context, id uint, from OrderStatus, estimatedDelivery time.Time) error
	Ship(ctx context.Context, o *Order) error
	Reject(ctx context.Context, o *Order) error
	Delete(ctx context.Context, o *Order) error
	ListLogsByUser(ctx context.Context, userEmail string) ([]*OrderLogEntry, error)
	ListAllLogs(ctx context.Context) ([]*OrderLogEntry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

// PlaceOrder creates the order and its item snapshots in one transaction.
// Product rows are read under FOR UPDATE so every snapshot in the order
// reflects a single consistent moment; stock is NOT decremented here, only
// at shipment.
func (r *repository) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", params.UserID),
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

	// Locking in ascending product id keeps concurrent transactions from
	// deadlocking against each other.
	items := make([]PlaceOrderItem, len(params.Items))
	copy(items, params.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	var (
		orderItems []OrderItem
		total      float64
	)
	for _, it := range items {
		var snap ProductSnapshot
		var image sql.NullString
		err := tx.QueryRowContext(ctx, `
			SELECT name, category, type, image, price
			FROM products
			WHERE id = $1 AND is_archived = false
			FOR UPDATE
		`, it.ProductID).Scan(&snap.Name, &snap.Category, &snap.Type, &image, &snap.Price)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if db.IsLockTimeout(err) {
			log.Warn("lock wait exceeded", zap.Uint("product_id", it.ProductID))
			return nil, ErrLockWait
		}
		if err != nil {
			log.Error("snapshot read failed", zap.Error(err))
			return nil, err
		}
		snap.Image = image.String

		subtotal := snap.Price * float64(it.Quantity)
		total += subtotal
		orderItems = append(orderItems, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Product:   snap,
			Subtotal:  subtotal,
		})
	}

	o := &Order{
		UserID:    params.UserID,
		UserEmail: params.UserEmail,
		Status:    StatusPending,
		Address:   params.Address,
		Total:     total,
		Items:     orderItems,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, user_email, status, house_number, street, barangay, city, province, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, o.UserID, o.UserEmail, o.Status,
		o.Address.HouseNumber, o.Address.Street, o.Address.Barangay,
		o.Address.City, o.Address.Province, o.Total).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("order insert failed", zap.Error(err))
		return nil, err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, name, category, type, image, price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`, o.ID, it.ProductID, it.Quantity,
			it.Product.Name, it.Product.Category, it.Product.Type,
			it.Product.Image, it.Product.Price, it.Subtotal).
			Scan(&it.ID)
		if err != nil {
			log.Error("order item insert failed", zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return o, nil
}

const orderColumns = `
	id, user_id, user_email, status, house_number, street, barangay, city, province,
	total, estimated_delivery, created_at
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserEmail, &o.Status,
		&o.Address.HouseNumber, &o.Address.Street, &o.Address.Barangay,
		&o.Address.City, &o.Address.Province,
		&o.Total, &o.EstimatedDelivery, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (r *repository) itemsByOrder(ctx context.Context, orderID uint) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, name, category, type, image, price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.Product.Name, &it.Product.Category, &it.Product.Type,
			&it.Product.Image, &it.Product.Price, &it.Subtotal,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) listOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range res {
		items, err := r.itemsByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}

	return res, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, excludeTerminal bool) ([]*Order, error) {
	if excludeTerminal {
		return r.listOrders(ctx, `
			SELECT`+orderColumns+`
			FROM orders
			WHERE user_id = $1 AND status NOT IN ($2, $3)
			ORDER BY created_at DESC
		`, userID, StatusShipped, StatusRejected)
	}
	return r.listOrders(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.listOrders(ctx, `
		SELECT`+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
}

// insertItemLogs writes one denormalized log row per order item, copying the
// order header and the item snapshot so the rows stay readable after the
// order is deleted. CreatedAt copies the order's creation time.
func insertItemLogs(ctx context.Context, tx *sql.Tx, o *Order, status OrderStatus) error {
	for _, it := range o.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_logs (order_id, user_email, status, estimated_delivery,
				house_number, street, barangay, city, province,
				product_id, quantity, name, category, type, image, price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`, o.ID, o.UserEmail, status, o.EstimatedDelivery,
			o.Address.HouseNumber, o.Address.Street, o.Address.Barangay,
			o.Address.City, o.Address.Province,
			it.ProductID, it.Quantity, it.Product.Name, it.Product.Category,
			it.Product.Type, it.Product.Image, it.Product.Price, o.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// updateStatus flips the order status inside tx. The WHERE clause pins the
// expected current status so a concurrent transition cannot be double
// applied; zero rows means the order moved under us.
func updateStatus(ctx context.Context, tx *sql.Tx, id uint, from, to OrderStatus, estimatedDelivery *time.Time) error {
	var (
		res sql.Result
		err error
	)
	if estimatedDelivery != nil {
		res, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $1, estimated_delivery = $2 WHERE id = $3 AND status = $4
		`, to, *estimatedDelivery, id, from)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $1 WHERE id = $2 AND status = $3
		`, to, id, from)
	}
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Approve is a pure metadata update; no log rows are written until the
// order reaches a terminal status.
func (r *repository) Approve(ctx context.Context, id uint, from OrderStatus, estimatedDelivery time.Time) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Approve"),
		zap.Uint("order_id", id),
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

	if err := updateStatus(ctx, tx, id, from, StatusApproved, &estimatedDelivery); err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			log.Error("status update failed", zap.Error(err))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

// Reject flips the order to Rejected and writes one log row per item.
// Stock is untouched.
func (r *repository) Reject(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Reject"),
		zap.Uint("order_id", o.ID),
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

	if err := updateStatus(ctx, tx, o.ID, o.Status, StatusRejected, nil); err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			log.Error("status update failed", zap.Error(err))
		}
		return err
	}

	if err := insertItemLogs(ctx, tx, o, StatusRejected); err != nil {
		log.Error("order log insert failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

// Ship is the fulfillment transaction. For each item, in ascending product
// id: lock the product row, verify stock, decrement it, and append the sale
// and stock ledger entries. Any shortfall rolls back the entire order so no
// item ships partially. Lock waits beyond the session lock_timeout surface
// as ErrLockWait.
func (r *repository) Ship(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Ship"),
		zap.Uint("order_id", o.ID),
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

	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	for _, it := range items {
		var stock int
		err := tx.QueryRowContext(ctx, `
			SELECT stock FROM products WHERE id = $1 FOR UPDATE
		`, it.ProductID).Scan(&stock)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		if db.IsLockTimeout(err) {
			log.Warn("lock wait exceeded", zap.Uint("product_id", it.ProductID))
			return ErrLockWait
		}
		if err != nil {
			log.Error("stock read failed", zap.Error(err))
			return err
		}

		if stock < it.Quantity {
			log.Warn("insufficient stock",
				zap.Uint("product_id", it.ProductID),
				zap.Int("stock", stock),
				zap.Int("requested", it.Quantity),
			)
			return ErrInsufficientStock
		}

		newStock := stock - it.Quantity

		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = $1 WHERE id = $2
		`, newStock, it.ProductID); err != nil {
			log.Error("stock update failed", zap.Error(err))
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sales (order_id, product_id, customer_email, product_name, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, o.ID, it.ProductID, o.UserEmail, it.Product.Name, it.Quantity, it.Product.Price, it.Subtotal); err != nil {
			log.Error("sale insert failed", zap.Error(err))
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stock_records (product_id, product_name, change_type, quantity_changed, previous_stock, new_stock)
			VALUES ($1, $2, 'ship', $3, $4, $5)
		`, it.ProductID, it.Product.Name, -it.Quantity, stock, newStock); err != nil {
			log.Error("stock record insert failed", zap.Error(err))
			return err
		}
	}

	if err := updateStatus(ctx, tx, o.ID, o.Status, StatusShipped, nil); err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			log.Error("status update failed", zap.Error(err))
		}
		return err
	}

	if err := insertItemLogs(ctx, tx, o, StatusShipped); err != nil {
		log.Error("order log insert failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

// Delete logs every item with status forced to Rejected, then removes the
// order and its items. The forced status keeps an audit trail even for
// deletions of orders that never reached a terminal state. Sales and stock
// records reference the order by plain id and stay behind as history.
func (r *repository) Delete(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Delete"),
		zap.Uint("order_id", o.ID),
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

	if err := insertItemLogs(ctx, tx, o, StatusRejected); err != nil {
		log.Error("order log insert failed", zap.Error(err))
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		log.Error("item delete failed", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, o.ID)
	if err != nil {
		log.Error("order delete failed", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

const logColumns = `
	id, order_id, user_email, status, estimated_delivery,
	house_number, street, barangay, city, province,
	product_id, quantity, name, category, type, image, price, created_at
`

func (r *repository) listLogs(ctx context.Context, query string, args ...any) ([]*OrderLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*OrderLogEntry
	for rows.Next() {
		var e OrderLogEntry
		if err := rows.Scan(
			&e.ID, &e.OrderID, &e.UserEmail, &e.Status, &e.EstimatedDelivery,
			&e.Address.HouseNumber, &e.Address.Street, &e.Address.Barangay,
			&e.Address.City, &e.Address.Province,
			&e.ProductID, &e.Quantity, &e.Product.Name, &e.Product.Category,
			&e.Product.Type, &e.Product.Image, &e.Product.Price, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}

	return res, rows.Err()
}

func (r *repository) ListLogsByUser(ctx context.Context, userEmail string) ([]*OrderLogEntry, error) {
	return r.listLogs(ctx, `
		SELECT`+logColumns+`
		FROM order_logs
		WHERE user_email = $1
		ORDER BY created_at DESC, id DESC
	`, userEmail)
}

func (r *repository) ListAllLogs(ctx context.Context) ([]*OrderLogEntry, error) {
	return r.listLogs(ctx, `
		SELECT`+logColumns+`
		FROM order_logs
		ORDER BY created_at DESC, id DESC
	`)
}
