package sales

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "order_id", "product_id", "customer_email", "product_name",
		"quantity", "unit_price", "total", "sold_at",
	}).
		AddRow(2, 42, 3, "a@b.com", "Granite 60x60", 1, 250.0, 250.0, end.Add(-time.Hour)).
		AddRow(1, 41, 5, "b@b.com", "Ceramic 30x30", 2, 100.0, 200.0, start.Add(time.Hour))

	mock.ExpectQuery("SELECT id, order_id, product_id, customer_email, product_name").
		WithArgs(start, end).
		WillReturnRows(rows)

	recs, err := repo.ListBetween(context.Background(), start, end)
	assert.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a@b.com", recs[0].CustomerEmail)
	assert.Equal(t, "Granite 60x60", recs[0].ProductName)
	assert.Equal(t, "b@b.com", recs[1].CustomerEmail)
}

func TestRepository_TotalSoldByProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	total, err := repo.TotalSoldByProduct(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, 7, total)
}
