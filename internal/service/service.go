package service

import (
	"github.com/maisonshop/backend/internal/config"
	authhandlers "github.com/maisonshop/backend/internal/handlers/auth"
	ordershandlers "github.com/maisonshop/backend/internal/handlers/orders"
	telegramhandlers "github.com/maisonshop/backend/internal/handlers/telegram"
	"github.com/maisonshop/backend/internal/repo"
	"github.com/maisonshop/backend/internal/service/authservice"
	"github.com/maisonshop/backend/internal/service/orderservice"
	"github.com/maisonshop/backend/internal/service/telegramservice"
	pkgauth "github.com/maisonshop/backend/pkg/auth"
	"github.com/maisonshop/backend/pkg/clients"
	"github.com/maisonshop/backend/pkg/telegram"
)

type Services struct {
	AuthService     authhandlers.Service
	OrderService    ordershandlers.Service
	TelegramService telegramhandlers.Service
}

func New(repo *repo.Repositories, cfg *config.Config) *Services {
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, jwtService)
	orderService := orderservice.New(repo.OrderRepo)

	sender := telegram.NewClient(cfg.BotToken, clients.NewHTTPClient())
	telegramService := telegramservice.New(repo.UserRepo, sender)

	return &Services{
		AuthService:     authService,
		OrderService:    orderService,
		TelegramService: telegramService,
	}
}
