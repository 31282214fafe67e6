package domain

import "time"

const (
	DefaultUserRole = "user"

	PendingOrderStatus   = "pending"
	DefaultPaymentMethod = "card"
)

type User struct {
	ID               int       `db:"id"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password_hash"`
	FullName         *string   `db:"full_name"`
	Phone            *string   `db:"phone"`
	Role             string    `db:"role"`
	TelegramID       *int64    `db:"telegram_id"`
	TelegramUsername *string   `db:"telegram_username"`
	CreatedAt        time.Time `db:"created_at"`
}

type Order struct {
	ID              int       `db:"id"`
	UserID          *int      `db:"user_id"`
	TotalAmount     float64   `db:"total_amount"`
	DeliveryAddress *string   `db:"delivery_address"`
	DeliveryPhone   *string   `db:"delivery_phone"`
	PaymentMethod   string    `db:"payment_method"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	Items []OrderItem

	// Joined user fields, filled only for the unfiltered admin listing.
	UserEmail *string
	UserName  *string
}

type OrderItem struct {
	ID           int     `db:"id"`
	OrderID      int     `db:"order_id"`
	ProductID    int     `db:"product_id"`
	ProductName  string  `db:"product_name"`
	ProductPrice float64 `db:"product_price"`
	Quantity     int     `db:"quantity"`
	SelectedSize *string `db:"selected_size"`
}
