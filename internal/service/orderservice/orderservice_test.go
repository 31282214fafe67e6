package orderservice

import (
	"context"
	"errors"
	"testing"

	"github.com/maisonshop/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func intPtr(i int) *int { return &i }

func TestCreate(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		order         *domain.Order
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Status forced to pending",
			order: &domain.Order{
				UserID:      intPtr(1),
				TotalAmount: 5980,
				Status:      "shipped",
			},
			prepareMock: func() {
				repo.EXPECT().Create(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
					assert.Equal(t, domain.PendingOrderStatus, order.Status)
					assert.Equal(t, domain.DefaultPaymentMethod, order.PaymentMethod)
					order.ID = 42
					return order, nil
				})
			},
			expectedError: nil,
		},
		{
			name: "Explicit payment method kept",
			order: &domain.Order{
				TotalAmount:   100,
				PaymentMethod: "cash",
			},
			prepareMock: func() {
				repo.EXPECT().Create(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
					assert.Equal(t, "cash", order.PaymentMethod)
					order.ID = 43
					return order, nil
				})
			},
			expectedError: nil,
		},
		{
			name: "Repository error",
			order: &domain.Order{
				TotalAmount: 100,
			},
			prepareMock: func() {
				repo.EXPECT().Create(context.Background(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			created, err := service.Create(context.Background(), tt.order)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, created.ID)
				assert.Equal(t, domain.PendingOrderStatus, created.Status)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
		checkOrder    func(t *testing.T, order *domain.Order)
	}{
		{
			name: "Order found with items",
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 42).Return(&domain.Order{ID: 42, Status: "pending"}, nil)
				repo.EXPECT().FindItemsByOrderIDs(context.Background(), []int{42}).Return(map[int][]domain.OrderItem{
					42: {{ID: 1, OrderID: 42, ProductName: "Пальто"}},
				}, nil)
			},
			expectedError: nil,
			checkOrder: func(t *testing.T, order *domain.Order) {
				assert.Len(t, order.Items, 1)
			},
		},
		{
			name: "Order without items gets empty collection",
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 42).Return(&domain.Order{ID: 42, Status: "pending"}, nil)
				repo.EXPECT().FindItemsByOrderIDs(context.Background(), []int{42}).Return(map[int][]domain.OrderItem{}, nil)
			},
			expectedError: nil,
			checkOrder: func(t *testing.T, order *domain.Order) {
				assert.NotNil(t, order.Items)
				assert.Empty(t, order.Items)
			},
		},
		{
			name: "Order not found",
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 42).Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 42).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			order, err := service.GetByID(context.Background(), 42)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				tt.checkOrder(t, order)
			}
		})
	}
}

func TestList(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		userID        *int
		prepareMock   func()
		expectedError error
		checkOrders   func(t *testing.T, orders []domain.Order)
	}{
		{
			name:   "Filtered by user",
			userID: intPtr(1),
			prepareMock: func() {
				repo.EXPECT().FindByUserID(context.Background(), 1).Return([]domain.Order{
					{ID: 43}, {ID: 42},
				}, nil)
				repo.EXPECT().FindItemsByOrderIDs(context.Background(), []int{43, 42}).Return(map[int][]domain.OrderItem{
					42: {{ID: 1, OrderID: 42}},
				}, nil)
			},
			checkOrders: func(t *testing.T, orders []domain.Order) {
				assert.Len(t, orders, 2)
				assert.Empty(t, orders[0].Items)
				assert.NotNil(t, orders[0].Items)
				assert.Len(t, orders[1].Items, 1)
			},
		},
		{
			name:   "All orders",
			userID: nil,
			prepareMock: func() {
				repo.EXPECT().FindAll(context.Background()).Return([]domain.Order{{ID: 42}}, nil)
				repo.EXPECT().FindItemsByOrderIDs(context.Background(), []int{42}).Return(map[int][]domain.OrderItem{}, nil)
			},
			checkOrders: func(t *testing.T, orders []domain.Order) {
				assert.Len(t, orders, 1)
			},
		},
		{
			name:   "No orders",
			userID: intPtr(2),
			prepareMock: func() {
				repo.EXPECT().FindByUserID(context.Background(), 2).Return(nil, nil)
			},
			checkOrders: func(t *testing.T, orders []domain.Order) {
				assert.NotNil(t, orders)
				assert.Empty(t, orders)
			},
		},
		{
			name:   "Repository error",
			userID: nil,
			prepareMock: func() {
				repo.EXPECT().FindAll(context.Background()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			orders, err := service.List(context.Background(), tt.userID)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, orders)
			} else {
				assert.NoError(t, err)
				tt.checkOrders(t, orders)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
		expectedOrder *domain.Order
	}{
		{
			name: "Status updated",
			prepareMock: func() {
				repo.EXPECT().UpdateStatus(context.Background(), 42, "shipped").
					Return(&domain.Order{ID: 42, Status: "shipped"}, nil)
			},
			expectedOrder: &domain.Order{ID: 42, Status: "shipped"},
		},
		{
			name: "Order not found",
			prepareMock: func() {
				repo.EXPECT().UpdateStatus(context.Background(), 42, "shipped").Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().UpdateStatus(context.Background(), 42, "shipped").
					Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			order, err := service.UpdateStatus(context.Background(), 42, "shipped")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedOrder, order)
			}
		})
	}
}
