package dto

// OrderItemDTO is the cart item shape the storefront sends on order creation.
type OrderItemDTO struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	SelectedSize *string `json:"selectedSize"`
}

type CreateOrderRequestDTO struct {
	UserID          *int           `json:"user_id"`
	Items           []OrderItemDTO `json:"items" validate:"required,min=1"`
	TotalAmount     float64        `json:"total_amount" validate:"required,gt=0"`
	DeliveryAddress *string        `json:"delivery_address"`
	DeliveryPhone   *string        `json:"delivery_phone"`
	PaymentMethod   string         `json:"payment_method"`
}

type CreateOrderResponseDTO struct {
	OrderID   int    `json:"order_id"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}

// OrderItemViewDTO is the stored snapshot shape returned on reads.
type OrderItemViewDTO struct {
	ID           int     `json:"id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	SelectedSize *string `json:"selected_size"`
}

type OrderDTO struct {
	ID              int                `json:"id"`
	UserID          *int               `json:"user_id"`
	TotalAmount     float64            `json:"total_amount"`
	DeliveryAddress *string            `json:"delivery_address"`
	DeliveryPhone   *string            `json:"delivery_phone"`
	PaymentMethod   string             `json:"payment_method"`
	Status          string             `json:"status"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
	UserEmail       *string            `json:"user_email,omitempty"`
	UserName        *string            `json:"user_name,omitempty"`
	Items           []OrderItemViewDTO `json:"items"`
}

type UpdateStatusRequestDTO struct {
	OrderID int    `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type OrderStatusDTO struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type UpdateStatusResponseDTO struct {
	Success bool           `json:"success"`
	Order   OrderStatusDTO `json:"order"`
}
