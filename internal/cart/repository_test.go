package cart

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_UpsertLine(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := AddToCartParams{UserEmail: "a@b.com", ProductID: 3, Quantity: 2}

	t.Run("NewLine", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO carts").
			WithArgs("a@b.com", uint(3), 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "product_id", "quantity"}).
				AddRow(1, "a@b.com", 3, 2))

		line, err := repo.UpsertLine(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), line.ID)
		assert.Equal(t, 2, line.Quantity)
	})

	// The conflict path adds to the stored quantity instead of failing on the
	// (user_email, product_id) unique constraint.
	t.Run("ExistingLineAccumulates", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO carts").
			WithArgs("a@b.com", uint(3), 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "product_id", "quantity"}).
				AddRow(1, "a@b.com", 3, 5))

		line, err := repo.UpsertLine(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RemoveLine(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM carts").
			WithArgs("a@b.com", uint(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RemoveLine(context.Background(), "a@b.com", 3))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM carts").
			WithArgs("a@b.com", uint(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveLine(context.Background(), "a@b.com", 9)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
