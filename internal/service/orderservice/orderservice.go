package orderservice

import (
	"context"
	"errors"

	"github.com/maisonshop/backend/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindItemsByOrderIDs(ctx context.Context, orderIDs []int) (map[int][]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error)
}

var ErrOrderNotFound = errors.New("order not found")

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Create persists the order and its item snapshots. Status is forced to
// pending no matter what the caller sent.
func (s *Service) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.Status = domain.PendingOrderStatus
	if order.PaymentMethod == "" {
		order.PaymentMethod = domain.DefaultPaymentMethod
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns orders newest first. Without a user filter each order also
// carries the owning user's email and name.
func (s *Service) List(ctx context.Context, userID *int) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	if userID != nil {
		orders, err = s.repo.FindByUserID(ctx, *userID)
	} else {
		orders, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads items for all orders in one query. An order without items
// gets an empty slice, never a placeholder row.
func (s *Service) attachItems(ctx context.Context, orders []*domain.Order) error {
	ids := make([]int, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}
	items, err := s.repo.FindItemsByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, order := range orders {
		order.Items = items[order.ID]
		if order.Items == nil {
			order.Items = []domain.OrderItem{}
		}
	}
	return nil
}

// UpdateStatus persists any non-empty status verbatim; there is no fixed
// status vocabulary.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
