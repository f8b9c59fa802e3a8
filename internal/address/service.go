package address

import (
	"context"

	"tilemart-be/internal/activity"
)

type Service interface {
	ListAddresses(ctx context.Context, userID uint) ([]*Address, error)
	AddAddress(ctx context.Context, userID uint, userEmail string, input CreateAddressInput) (*Address, error)
	SetAddressActive(ctx context.Context, userID uint, userEmail string, addressID uint, active bool) (*Address, error)
	DeleteAddress(ctx context.Context, userEmail string, addressID uint) (*Address, error)
	ActiveAddress(ctx context.Context, userID uint) (*Address, error)
}

type service struct {
	repo       Repository
	activities activity.Service
}

func NewService(repo Repository, activities activity.Service) Service {
	return &service{repo: repo, activities: activities}
}

func (s *service) ListAddresses(ctx context.Context, userID uint) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// AddAddress creates a new inactive address; the user activates it explicitly.
func (s *service) AddAddress(ctx context.Context, userID uint, userEmail string, input CreateAddressInput) (*Address, error) {
	if input.Street == "" {
		return nil, ErrStreetRequired
	}
	if input.City == "" {
		return nil, ErrCityRequired
	}
	if input.Province == "" {
		return nil, ErrProvinceRequired
	}

	addr := &Address{
		UserID:      userID,
		HouseNumber: input.HouseNumber,
		Street:      input.Street,
		Barangay:    input.Barangay,
		City:        input.City,
		Province:    input.Province,
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, userEmail, "Added a new address")
	return addr, nil
}

func (s *service) SetAddressActive(ctx context.Context, userID uint, userEmail string, addressID uint, active bool) (*Address, error) {
	if active {
		if err := s.repo.SetActive(ctx, userID, addressID); err != nil {
			return nil, err
		}
		s.activities.Record(ctx, userEmail, "Activated an address")
	} else {
		if err := s.repo.Deactivate(ctx, addressID); err != nil {
			return nil, err
		}
		s.activities.Record(ctx, userEmail, "Deactivated an address")
	}

	return s.repo.GetByID(ctx, addressID)
}

func (s *service) DeleteAddress(ctx context.Context, userEmail string, addressID uint) (*Address, error) {
	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, addressID); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, userEmail, "Deleted an address")
	return addr, nil
}

// ActiveAddress returns the user's single active delivery address.
func (s *service) ActiveAddress(ctx context.Context, userID uint) (*Address, error) {
	return s.repo.GetActiveByUser(ctx, userID)
}
