package sales

import (
	"context"
	"time"
)

const lowStockThreshold = 10

type Service interface {
	SalesReport(ctx context.Context, start, end time.Time) (*Report, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
	WeeklyPerformance(ctx context.Context) ([]DailyPerformance, error)
	TotalSoldByProduct(ctx context.Context, productID uint) (int, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// SalesReport covers start through end inclusive. The end bound rolls over
// to the next midnight so sales made during the last day are counted.
func (s *service) SalesReport(ctx context.Context, start, end time.Time) (*Report, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	from := start.Truncate(24 * time.Hour)
	to := end.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	revenue, quantity, orders, err := s.repo.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	best, err := s.repo.TopProducts(ctx, from, to, 5)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Report{
		Start:         start,
		End:           end,
		TotalRevenue:  revenue,
		TotalQuantity: quantity,
		OrderCount:    orders,
		BestSellers:   best,
		Sales:         records,
	}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	todayRevenue, todayQty, _, err := s.repo.Summary(ctx, today, tomorrow)
	if err != nil {
		return nil, err
	}

	totalRevenue, totalQty, _, err := s.repo.Summary(ctx, time.Time{}, tomorrow)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.CountOrdersByStatus(ctx, "Pending")
	if err != nil {
		return nil, err
	}

	low, err := s.repo.LowStockProducts(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayRevenue:  todayRevenue,
		TodayQuantity: todayQty,
		TotalRevenue:  totalRevenue,
		TotalQuantity: totalQty,
		PendingOrders: pending,
		LowStock:      low,
	}, nil
}

// WeeklyPerformance returns the last seven calendar days, oldest first,
// with zero rows filled in for days without sales.
func (s *service) WeeklyPerformance(ctx context.Context) ([]DailyPerformance, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -6)
	end := today.AddDate(0, 0, 1)

	totals, err := s.repo.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	res := make([]DailyPerformance, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		d, ok := totals[day.Format("2006-01-02")]
		if !ok {
			d = DailyPerformance{Date: day}
		}
		d.Day = day.Weekday().String()[:3]
		d.Date = day
		res = append(res, d)
	}

	return res, nil
}

func (s *service) TotalSoldByProduct(ctx context.Context, productID uint) (int, error) {
	return s.repo.TotalSoldByProduct(ctx, productID)
}
