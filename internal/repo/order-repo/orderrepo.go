package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Create writes the order row and all item snapshots in one transaction, so
// readers never observe a partially written order.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	orderQuery := `
        INSERT INTO orders (user_id, total_amount, delivery_address, delivery_phone, payment_method, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	itemQuery := `
        INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, selected_size)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, orderQuery,
			order.UserID, order.TotalAmount, order.DeliveryAddress,
			order.DeliveryPhone, order.PaymentMethod, order.Status,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			_, err := r.db.Exec(ctx, itemQuery,
				item.OrderID, item.ProductID, item.ProductName,
				item.ProductPrice, item.Quantity, item.SelectedSize,
			)
			if err != nil {
				zap.L().Error("can't save order item", zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT id, user_id, total_amount, delivery_address, delivery_phone,
               payment_method, status, created_at, updated_at
        FROM orders
        WHERE id = $1
    `
	var order domain.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.TotalAmount, &order.DeliveryAddress,
		&order.DeliveryPhone, &order.PaymentMethod, &order.Status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
        SELECT id, user_id, total_amount, delivery_address, delivery_phone,
               payment_method, status, created_at, updated_at
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.TotalAmount, &order.DeliveryAddress,
			&order.DeliveryPhone, &order.PaymentMethod, &order.Status,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// FindAll returns every order, newest first, with the owning user's email and
// display name joined in for the admin listing.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
        SELECT o.id, o.user_id, o.total_amount, o.delivery_address, o.delivery_phone,
               o.payment_method, o.status, o.created_at, o.updated_at,
               u.email, u.full_name
        FROM orders o
        LEFT JOIN users u ON o.user_id = u.id
        ORDER BY o.created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.TotalAmount, &order.DeliveryAddress,
			&order.DeliveryPhone, &order.PaymentMethod, &order.Status,
			&order.CreatedAt, &order.UpdatedAt,
			&order.UserEmail, &order.UserName,
		)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// FindItemsByOrderIDs loads items for a batch of orders in one round trip.
func (r *Repository) FindItemsByOrderIDs(ctx context.Context, orderIDs []int) (map[int][]domain.OrderItem, error) {
	query := `
        SELECT id, order_id, product_id, product_name, product_price, quantity, selected_size
        FROM order_items
        WHERE order_id = ANY($1)
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		zap.L().Error("can't get order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make(map[int][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.SelectedSize,
		)
		if err != nil {
			zap.L().Error("can't scan order item row", zap.Error(err))
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

// UpdateStatus persists the new status and bumps updated_at. A nil order
// means no row matched.
func (r *Repository) UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $2
        RETURNING id, status
    `
	var order domain.Order
	err := r.db.QueryRow(ctx, query, status, orderID).Scan(&order.ID, &order.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't update order status", zap.Error(err))
		return nil, err
	}
	return &order, nil
}
