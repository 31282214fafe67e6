package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/internal/dto"
	"github.com/maisonshop/backend/internal/service/orderservice"
	"github.com/maisonshop/backend/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context, userID *int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error)
}

type OrderHandler struct {
	orderService Service
	validate     *validator.Validate
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

func toOrderDTO(order *domain.Order) dto.OrderDTO {
	items := make([]dto.OrderItemViewDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemViewDTO{
			ID:           item.ID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			SelectedSize: item.SelectedSize,
		})
	}
	return dto.OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryPhone:   order.DeliveryPhone,
		PaymentMethod:   order.PaymentMethod,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
		UserEmail:       order.UserEmail,
		UserName:        order.UserName,
		Items:           items,
	}
}

// CreateOrder godoc
//
//	@Summary		Create an order
//	@Description	Write one order with its item snapshots atomically; status always starts as pending
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order payload"
//	@Success		200		{object}	dto.CreateOrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Empty items or missing total"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Items and total_amount required")
		return
	}

	order := &domain.Order{
		UserID:          req.UserID,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		PaymentMethod:   req.PaymentMethod,
		Items:           make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:    item.ID,
			ProductName:  item.Name,
			ProductPrice: item.Price,
			Quantity:     item.Quantity,
			SelectedSize: item.SelectedSize,
		})
	}

	created, err := h.orderService.Create(r.Context(), order)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CreateOrderResponseDTO{
		OrderID:   created.ID,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
		Status:    created.Status,
	})
}

// GetOrders godoc
//
//	@Summary		Read orders
//	@Description	One order by order_id, a user's orders by user_id, or all orders with owner info
//	@Tags			Orders
//	@Produce		json
//	@Param			order_id	query		int	false	"Order identifier"
//	@Param			user_id		query		int	false	"Owning user identifier"
//	@Success		200			{array}		dto.OrderDTO
//	@Failure		400			{object}	utils.Response	"Malformed identifier"
//	@Failure		404			{object}	utils.Response	"Order not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if rawOrderID := query.Get("order_id"); rawOrderID != "" {
		orderID, err := strconv.Atoi(rawOrderID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid order_id")
			return
		}
		order, err := h.orderService.GetByID(r.Context(), orderID)
		if err != nil {
			if errors.Is(err, orderservice.ErrOrderNotFound) {
				utils.RespondWithError(w, http.StatusNotFound, "Order not found")
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, toOrderDTO(order))
		return
	}

	var userID *int
	if rawUserID := query.Get("user_id"); rawUserID != "" {
		id, err := strconv.Atoi(rawUserID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid user_id")
			return
		}
		userID = &id
	}

	orders, err := h.orderService.List(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	response := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderDTO(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateStatus godoc
//
//	@Summary		Update order status
//	@Description	Persist a new status label and bump the modification timestamp
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpdateStatusRequestDTO	true	"Status update body"
//	@Success		200		{object}	dto.UpdateStatusResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing order_id or status"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/orders [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "order_id and status required")
		return
	}
	order, err := h.orderService.UpdateStatus(r.Context(), req.OrderID, req.Status)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UpdateStatusResponseDTO{
		Success: true,
		Order:   dto.OrderStatusDTO{ID: order.ID, Status: order.Status},
	})
}
