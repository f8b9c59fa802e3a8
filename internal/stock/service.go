package stock

import "context"

type Service interface {
	AddStock(ctx context.Context, productID uint, amount int) (*StockRecord, error)
	SetStock(ctx context.Context, productID uint, newStock int) (*StockRecord, error)
	Records(ctx context.Context) ([]*StockRecord, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddStock increments a product's stock by amount and records an 'add' entry.
func (s *service) AddStock(ctx context.Context, productID uint, amount int) (*StockRecord, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}
	return s.repo.Adjust(ctx, productID, ChangeAdd, amount)
}

// SetStock overwrites a product's stock level and records an 'update' entry
// with the signed difference.
func (s *service) SetStock(ctx context.Context, productID uint, newStock int) (*StockRecord, error) {
	if newStock < 0 {
		return nil, ErrNegativeStock
	}
	return s.repo.Adjust(ctx, productID, ChangeUpdate, newStock)
}

func (s *service) Records(ctx context.Context) ([]*StockRecord, error) {
	return s.repo.ListRecords(ctx)
}
