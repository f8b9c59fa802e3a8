package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*SaleRecord, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*SaleRecord), args.Error(1)
}

func (m *MockRepository) Summary(ctx context.Context, start, end time.Time) (float64, int, int, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(float64), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error) {
	args := m.Called(ctx, start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ProductSales), args.Error(1)
}

func (m *MockRepository) DailyTotals(ctx context.Context, start, end time.Time) (map[string]DailyPerformance, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]DailyPerformance), args.Error(1)
}

func (m *MockRepository) TotalSoldByProduct(ctx context.Context, productID uint) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) LowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LowStockProduct), args.Error(1)
}

func (m *MockRepository) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func TestService_SalesReport(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		// End bound rolls past midnight so the last day is fully included.
		wantTo := end.AddDate(0, 0, 1)

		mockRepo.On("Summary", ctx, start, wantTo).Return(1250.0, 8, 3, nil)
		mockRepo.On("TopProducts", ctx, start, wantTo, 5).
			Return([]ProductSales{{ProductID: 3, ProductName: "Granite 60x60", Quantity: 5, Revenue: 1250}}, nil)
		mockRepo.On("ListBetween", ctx, start, wantTo).
			Return([]*SaleRecord{{ID: 1, ProductID: 3, CustomerEmail: "a@b.com", Quantity: 5, Total: 1250}}, nil)

		report, err := svc.SalesReport(ctx, start, end)
		assert.NoError(t, err)
		assert.Equal(t, 1250.0, report.TotalRevenue)
		assert.Equal(t, 8, report.TotalQuantity)
		assert.Equal(t, 3, report.OrderCount)
		assert.Len(t, report.BestSellers, 1)
		assert.Equal(t, "a@b.com", report.Sales[0].CustomerEmail)
		mockRepo.AssertExpectations(t)
	})

	t.Run("SingleDayRange", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		wantTo := start.AddDate(0, 0, 1)
		mockRepo.On("Summary", ctx, start, wantTo).Return(0.0, 0, 0, nil)
		mockRepo.On("TopProducts", ctx, start, wantTo, 5).Return([]ProductSales{}, nil)
		mockRepo.On("ListBetween", ctx, start, wantTo).Return([]*SaleRecord{}, nil)

		report, err := svc.SalesReport(ctx, start, start)
		assert.NoError(t, err)
		assert.Zero(t, report.TotalRevenue)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.SalesReport(ctx, end, start)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestService_Dashboard(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	mockRepo := new(MockRepository)
	svc := &service{repo: mockRepo, now: func() time.Time { return now }}

	mockRepo.On("Summary", ctx, today, tomorrow).Return(300.0, 2, 1, nil)
	mockRepo.On("Summary", ctx, time.Time{}, tomorrow).Return(9000.0, 60, 25, nil)
	mockRepo.On("CountOrdersByStatus", ctx, "Pending").Return(4, nil)
	mockRepo.On("LowStockProducts", ctx, lowStockThreshold).
		Return([]LowStockProduct{{ProductID: 5, Name: "Ceramic 30x30", Stock: 2}}, nil)

	stats, err := svc.Dashboard(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 300.0, stats.TodayRevenue)
	assert.Equal(t, 9000.0, stats.TotalRevenue)
	assert.Equal(t, 4, stats.PendingOrders)
	assert.Len(t, stats.LowStock, 1)
	mockRepo.AssertExpectations(t)
}

func TestService_WeeklyPerformance(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) // a Saturday
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -6)

	mockRepo := new(MockRepository)
	svc := &service{repo: mockRepo, now: func() time.Time { return now }}

	mockRepo.On("DailyTotals", ctx, start, today.AddDate(0, 0, 1)).
		Return(map[string]DailyPerformance{
			"2026-08-29": {Revenue: 500, Quantity: 3},
		}, nil)

	days, err := svc.WeeklyPerformance(ctx)
	assert.NoError(t, err)
	assert.Len(t, days, 7)

	// Oldest day first, gaps filled with zeros.
	assert.Equal(t, "Sun", days[0].Day)
	assert.Zero(t, days[0].Revenue)
	assert.Equal(t, "Sat", days[6].Day)
	assert.Equal(t, 500.0, days[6].Revenue)
	assert.Equal(t, 3, days[6].Quantity)
}
