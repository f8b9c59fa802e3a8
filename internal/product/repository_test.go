package product

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "image", "category", "type", "name", "description", "price", "stock", "is_archived"}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		rows := sqlmock.NewRows(productCols).
			AddRow(3, nil, "Tiles", "Floor", "Granite 60x60", "polished", 250.0, 10, false)

		mock.ExpectQuery("SELECT(.|\n)*FROM products WHERE id = \\$1 AND is_archived = false").
			WithArgs(uint(3)).
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 3, true)
		assert.NoError(t, err)
		assert.Equal(t, "Granite 60x60", p.Name)
		assert.Nil(t, p.Image)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectQuery("SELECT(.|\n)*FROM products").
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows(productCols))

		_, err = repo.GetByID(ctx, 99, true)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("PublicExcludesArchived", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		rows := sqlmock.NewRows(productCols).
			AddRow(3, nil, "Tiles", "Floor", "Granite 60x60", "", 250.0, 10, false)

		mock.ExpectQuery("SELECT(.|\n)*FROM products WHERE is_archived = false ORDER BY id").
			WillReturnRows(rows)

		res, err := repo.List(ctx, false)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("AdminIncludesArchived", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		rows := sqlmock.NewRows(productCols).
			AddRow(3, nil, "Tiles", "Floor", "Granite 60x60", "", 250.0, 10, false).
			AddRow(4, nil, "Tiles", "Wall", "Discontinued 20x20", "", 80.0, 0, true)

		mock.ExpectQuery("SELECT(.|\n)*FROM products ORDER BY id").
			WillReturnRows(rows)

		res, err := repo.List(ctx, true)
		assert.NoError(t, err)
		require.Len(t, res, 2)
		assert.True(t, res[1].IsArchived)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM order_items").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("DELETE FROM carts").
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM products").
			WithArgs(uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReferencedByOrders", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM order_items").
			WithArgs(uint(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err = repo.Delete(ctx, 3)
		assert.ErrorIs(t, err, ErrProductReferenced)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM order_items").
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("DELETE FROM carts").
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM products").
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Delete(ctx, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_ToggleArchive(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(productCols).
		AddRow(3, nil, "Tiles", "Floor", "Granite 60x60", "", 250.0, 10, true)

	mock.ExpectQuery("UPDATE products").
		WithArgs(uint(3)).
		WillReturnRows(rows)

	p, err := repo.ToggleArchive(ctx, 3)
	assert.NoError(t, err)
	assert.True(t, p.IsArchived)
}
