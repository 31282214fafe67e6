package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/maisonshop/backend/docs"
	authhandlers "github.com/maisonshop/backend/internal/handlers/auth"
	ordershandlers "github.com/maisonshop/backend/internal/handlers/orders"
	telegramhandlers "github.com/maisonshop/backend/internal/handlers/telegram"
	"github.com/maisonshop/backend/internal/service"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type TelegramHandler interface {
	NotifyOrder(w http.ResponseWriter, r *http.Request)
	LinkAccount(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	OrderHandler    OrderHandler
	TelegramHandler TelegramHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		OrderHandler:    ordershandlers.New(s.OrderService),
		TelegramHandler: telegramhandlers.New(s.TelegramService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		corsMiddleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Post("/register", h.AuthHandler.Register)
	r.Post("/login", h.AuthHandler.Login)
	r.Get("/verify", h.AuthHandler.Verify)

	r.Post("/orders", h.OrderHandler.CreateOrder)
	r.Get("/orders", h.OrderHandler.GetOrders)
	r.Put("/orders", h.OrderHandler.UpdateStatus)

	r.Post("/notify-order", h.TelegramHandler.NotifyOrder)
	r.Post("/link-account", h.TelegramHandler.LinkAccount)

	r.Post("/", h.TelegramHandler.Webhook)

	return r
}
