package product

import (
	"context"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListAllProducts(ctx context.Context) ([]*Product, error)
	AddProduct(ctx context.Context, input NewProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id uint, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	ToggleArchive(ctx context.Context, id uint) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetProduct returns an active (not archived) product.
func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id, true)
}

// ListProducts is the public catalog view: archived products excluded.
func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx, false)
}

// ListAllProducts is the admin view, archived included.
func (s *service) ListAllProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx, true)
}

func (s *service) AddProduct(ctx context.Context, input NewProductInput) (*Product, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to add product",
			zap.String("name", input.Name), zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uint, input UpdateProductInput) (*Product, error) {
	if input.Price != nil && *input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidStock
	}
	if input.Name != nil && *input.Name == "" {
		return nil, ErrNameRequired
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ToggleArchive(ctx context.Context, id uint) (*Product, error) {
	return s.repo.ToggleArchive(ctx, id)
}
