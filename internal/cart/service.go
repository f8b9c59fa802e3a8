package cart

import (
	"context"

	"tilemart-be/internal/product"
)

type Service interface {
	GetCart(ctx context.Context, userEmail string) ([]*CartView, error)
	AddToCart(ctx context.Context, params AddToCartParams) (*CartView, error)
	RemoveFromCart(ctx context.Context, userEmail string, productID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) GetCart(ctx context.Context, userEmail string) ([]*CartView, error) {
	if userEmail == "" {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.GetByUser(ctx, userEmail)
}

// AddToCart inserts a new line or increments an existing one.
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*CartView, error) {
	if params.UserEmail == "" {
		return nil, ErrUserNotAuthenticated
	}
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID, true)
	if err != nil {
		if err == product.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	line, err := s.repo.UpsertLine(ctx, params)
	if err != nil {
		return nil, err
	}

	image := ""
	if p.Image != nil {
		image = *p.Image
	}

	return &CartView{
		ProductID: p.ID,
		Image:     image,
		Category:  p.Category,
		Type:      p.Type,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Quantity:  line.Quantity,
	}, nil
}

func (s *service) RemoveFromCart(ctx context.Context, userEmail string, productID uint) error {
	if userEmail == "" {
		return ErrUserNotAuthenticated
	}
	return s.repo.RemoveLine(ctx, userEmail, productID)
}
