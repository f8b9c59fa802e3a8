package order

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	params := PlaceOrderParams{
		UserID:    1,
		UserEmail: "a@b.com",
		Address:   AddressSnapshot{Street: "Mabini St", City: "Davao", Province: "Davao del Sur"},
		Items: []PlaceOrderItem{
			{ProductID: 5, Quantity: 2},
			{ProductID: 3, Quantity: 1},
		},
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()

		// Snapshots are read in ascending product id order.
		mock.ExpectQuery("SELECT name, category, type, image, price FROM products").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "category", "type", "image", "price"}).
				AddRow("Granite 60x60", "Tiles", "Floor", nil, 250.0))

		mock.ExpectQuery("SELECT name, category, type, image, price FROM products").
			WithArgs(uint(5)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "category", "type", "image", "price"}).
				AddRow("Ceramic 30x30", "Tiles", "Wall", "img.png", 100.0))

		now := time.Now()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(uint(1), "a@b.com", StatusPending, "", "Mabini St", "", "Davao", "Davao del Sur", 450.0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))

		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(uint(42), uint(3), 1, "Granite 60x60", "Tiles", "Floor", "", 250.0, 250.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(uint(42), uint(5), 2, "Ceramic 30x30", "Tiles", "Wall", "img.png", 100.0, 200.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

		mock.ExpectCommit()

		o, err := repo.PlaceOrder(ctx, params)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), o.ID)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, 450.0, o.Total)
		assert.Len(t, o.Items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ArchivedProductRejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, category, type, image, price FROM products").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "category", "type", "image", "price"}))
		mock.ExpectRollback()

		_, err = repo.PlaceOrder(ctx, params)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Ship(t *testing.T) {
	ctx := context.Background()

	o := &Order{
		ID:        42,
		UserEmail: "a@b.com",
		Status:    StatusApproved,
		Items: []OrderItem{
			{ProductID: 5, Quantity: 2, Product: ProductSnapshot{Name: "Ceramic 30x30", Price: 100}, Subtotal: 200},
			{ProductID: 3, Quantity: 1, Product: ProductSnapshot{Name: "Granite 60x60", Price: 250}, Subtotal: 250},
		},
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()

		// Product 3 first: rows lock in ascending id order.
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(10))
		mock.ExpectExec("UPDATE products SET stock").
			WithArgs(9, uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO sales").
			WithArgs(uint(42), uint(3), "a@b.com", "Granite 60x60", 1, 250.0, 250.0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO stock_records").
			WithArgs(uint(3), "Granite 60x60", -1, 10, 9).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs(uint(5)).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(2))
		mock.ExpectExec("UPDATE products SET stock").
			WithArgs(0, uint(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO sales").
			WithArgs(uint(42), uint(5), "a@b.com", "Ceramic 30x30", 2, 100.0, 200.0).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectExec("INSERT INTO stock_records").
			WithArgs(uint(5), "Ceramic 30x30", -2, 2, 0).
			WillReturnResult(sqlmock.NewResult(2, 1))

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusShipped, uint(42), StatusApproved).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// One denormalized log row per item, in the order's own item order.
		mock.ExpectExec("INSERT INTO order_logs").
			WithArgs(uint(42), "a@b.com", StatusShipped, nil,
				"", "", "", "", "",
				uint(5), 2, "Ceramic 30x30", "", "", "", 100.0, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectExec("INSERT INTO order_logs").
			WithArgs(uint(42), "a@b.com", StatusShipped, nil,
				"", "", "", "", "",
				uint(3), 1, "Granite 60x60", "", "", "", 250.0, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(4, 1))

		mock.ExpectCommit()

		assert.NoError(t, repo.Ship(ctx, o))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStockRollsBackAll", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()

		// First item fine, second falls short: nothing may commit.
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(10))
		mock.ExpectExec("UPDATE products SET stock").
			WithArgs(9, uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO sales").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO stock_records").
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs(uint(5)).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(1))
		mock.ExpectRollback()

		err = repo.Ship(ctx, o)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConcurrentTransitionRefused", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		single := &Order{ID: 7, UserEmail: "a@b.com", Status: StatusPending,
			Items: []OrderItem{{ProductID: 3, Quantity: 1, Product: ProductSnapshot{Name: "Granite 60x60", Price: 250}, Subtotal: 250}}}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(5))
		mock.ExpectExec("UPDATE products SET stock").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO sales").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO stock_records").
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Status changed underneath us: zero rows updated.
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusShipped, uint(7), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Ship(ctx, single)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Approve(t *testing.T) {
	ctx := context.Background()
	eta := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		// Approval is metadata only; no log rows until a terminal status.
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusApproved, eta, uint(1), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Approve(ctx, 1, StatusPending, eta))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleStatus", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusApproved, eta, uint(1), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Approve(ctx, 1, StatusPending, eta)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRepository_Reject(t *testing.T) {
	ctx := context.Background()

	o := &Order{
		ID:        42,
		UserEmail: "a@b.com",
		Status:    StatusPending,
		Items: []OrderItem{
			{ProductID: 3, Quantity: 1, Product: ProductSnapshot{Name: "Granite 60x60", Price: 250}, Subtotal: 250},
		},
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusRejected, uint(42), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_logs").
			WithArgs(uint(42), "a@b.com", StatusRejected, nil,
				"", "", "", "", "",
				uint(3), 1, "Granite 60x60", "", "", "", 250.0, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Reject(ctx, o))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleStatus", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(StatusRejected, uint(42), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Reject(ctx, o)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	o := &Order{
		ID:        42,
		UserEmail: "a@b.com",
		Status:    StatusPending,
		Items: []OrderItem{
			{ProductID: 3, Quantity: 1, Product: ProductSnapshot{Name: "Granite 60x60", Price: 250}, Subtotal: 250},
			{ProductID: 5, Quantity: 2, Product: ProductSnapshot{Name: "Ceramic 30x30", Price: 100}, Subtotal: 200},
		},
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		// Every item is logged with status forced to Rejected before the
		// rows disappear.
		mock.ExpectExec("INSERT INTO order_logs").
			WithArgs(uint(42), "a@b.com", StatusRejected, nil,
				"", "", "", "", "",
				uint(3), 1, "Granite 60x60", "", "", "", 250.0, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO order_logs").
			WithArgs(uint(42), "a@b.com", StatusRejected, nil,
				"", "", "", "", "",
				uint(5), 2, "Ceramic 30x30", "", "", "", 100.0, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectExec("DELETE FROM order_items").
			WithArgs(uint(42)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM orders").
			WithArgs(uint(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, o))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GoneUnderneath", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		gone := &Order{ID: 99, UserEmail: "a@b.com", Status: StatusPending}

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM order_items").
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM orders").
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Delete(ctx, gone)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery("SELECT(.|\n)*FROM orders").
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err = repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
