package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tilemart-be/internal/activity"
	"tilemart-be/internal/address"
)

type Service interface {
	PlaceOrder(ctx context.Context, userID uint, userEmail string, items []PlaceOrderItem) (*Order, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*Order, error)
	ListAllOrders(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, rawStatus string, estimatedDelivery *time.Time) (*Order, error)
	DeleteOrder(ctx context.Context, id uint) error
	DeleteUserOrder(ctx context.Context, userID, id uint) error
	UserOrderLogs(ctx context.Context, userEmail string) ([]*OrderLogEntry, error)
	AllOrderLogs(ctx context.Context) ([]*OrderLogEntry, error)
}

type service struct {
	repo       Repository
	addresses  address.Repository
	activities activity.Service
}

func NewService(repo Repository, addresses address.Repository, activities activity.Service) Service {
	return &service{repo: repo, addresses: addresses, activities: activities}
}

// PlaceOrder snapshots the user's active address and the ordered products
// into a new Pending order. Stock is untouched until shipment.
func (s *service) PlaceOrder(ctx context.Context, userID uint, userEmail string, items []PlaceOrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	addr, err := s.addresses.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, address.ErrNoActiveAddress) {
			return nil, ErrNoActiveAddress
		}
		return nil, err
	}

	o, err := s.repo.PlaceOrder(ctx, PlaceOrderParams{
		UserID:    userID,
		UserEmail: userEmail,
		Address: AddressSnapshot{
			HouseNumber: addr.HouseNumber,
			Street:      addr.Street,
			Barangay:    addr.Barangay,
			City:        addr.City,
			Province:    addr.Province,
		},
		Items: items,
	})
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, userEmail, fmt.Sprintf("Placed order #%d", o.ID))
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUserOrders returns the user's in-flight orders; shipped and rejected
// ones only appear in the order logs.
func (s *service) ListUserOrders(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID, true)
}

func (s *service) ListAllOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus drives the fulfillment flow. Approval requires an estimated
// delivery date; shipment runs the stock-consuming transaction; terminal
// orders refuse any further change.
func (s *service) UpdateStatus(ctx context.Context, id uint, rawStatus string, estimatedDelivery *time.Time) (*Order, error) {
	next, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	switch next {
	case StatusApproved:
		if estimatedDelivery == nil {
			return nil, ErrEstimatedDeliveryRequired
		}
		err = s.repo.Approve(ctx, id, o.Status, *estimatedDelivery)
	case StatusShipped:
		err = s.repo.Ship(ctx, o)
	case StatusRejected:
		err = s.repo.Reject(ctx, o)
	default:
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteOrder(ctx context.Context, id uint) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, o); err != nil {
		return err
	}

	s.activities.Record(ctx, o.UserEmail, fmt.Sprintf("Deleted order #%d", o.ID))
	return nil
}

// DeleteUserOrder lets a user withdraw their own order. Orders belonging to
// other users are reported as not found rather than forbidden.
func (s *service) DeleteUserOrder(ctx context.Context, userID, id uint) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrOrderNotFound
	}

	if err := s.repo.Delete(ctx, o); err != nil {
		return err
	}

	s.activities.Record(ctx, o.UserEmail, fmt.Sprintf("Deleted order #%d", o.ID))
	return nil
}

func (s *service) UserOrderLogs(ctx context.Context, userEmail string) ([]*OrderLogEntry, error) {
	return s.repo.ListLogsByUser(ctx, userEmail)
}

func (s *service) AllOrderLogs(ctx context.Context) ([]*OrderLogEntry, error) {
	return s.repo.ListAllLogs(ctx)
}
