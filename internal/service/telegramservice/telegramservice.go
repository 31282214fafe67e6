package telegramservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/pkg/telegram"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	UpdateTelegram(ctx context.Context, userID int, telegramID int64, username *string) (*domain.User, error)
}

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text, parseMode string) error
}

var ErrUserNotFound = errors.New("user not found")

const guestName = "Гость"

type Service struct {
	userRepo UserRepo
	sender   MessageSender
}

func New(userRepo UserRepo, sender MessageSender) *Service {
	return &Service{
		userRepo: userRepo,
		sender:   sender,
	}
}

// OrderNotification is what the storefront reports about a freshly created
// order.
type OrderNotification struct {
	OrderID     int
	UserName    string
	TotalAmount float64
	Items       []NotificationItem
	ChatID      int64
}

type NotificationItem struct {
	Name     string
	Price    float64
	Quantity int
}

// NotifyNewOrder sends a single plain message to the given chat. Failures
// surface to the caller but are never retried and never touch order state.
func (s *Service) NotifyNewOrder(ctx context.Context, n OrderNotification) error {
	if n.UserName == "" {
		n.UserName = guestName
	}

	err := s.sender.SendMessage(ctx, n.ChatID, formatOrderMessage(n), telegram.ParseModeHTML)
	if err != nil {
		zap.L().Error("can't send order notification", zap.Int("order_id", n.OrderID), zap.Error(err))
		return err
	}
	zap.L().Info("order notification sent", zap.Int("order_id", n.OrderID))
	return nil
}

func formatOrderMessage(n OrderNotification) string {
	var items strings.Builder
	for i, item := range n.Items {
		if i > 0 {
			items.WriteByte('\n')
		}
		fmt.Fprintf(&items, "• %s x%d - %.0f ₽", item.Name, item.Quantity, item.Price)
	}

	return fmt.Sprintf(
		"🛍 Новый заказ #%d\n\n"+
			"👤 Клиент: %s\n"+
			"💰 Сумма: %.0f ₽\n\n"+
			"📦 Товары:\n%s\n\n"+
			"Перейдите в админ-панель для обработки заказа.",
		n.OrderID, n.UserName, n.TotalAmount, items.String(),
	)
}

// LinkAccount stores the telegram identity on the user row.
func (s *Service) LinkAccount(ctx context.Context, userID int, telegramID int64, username *string) (*domain.User, error) {
	user, err := s.userRepo.UpdateTelegram(ctx, userID, telegramID, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	zap.L().Info("telegram account linked", zap.Int("user_id", userID), zap.Int64("telegram_id", telegramID))
	return user, nil
}

// IncomingMessage is the part of a webhook update the bot reacts to.
type IncomingMessage struct {
	ChatID     int64
	TelegramID int64
	Username   string
	Text       string
}

// HandleMessage dispatches one bot command. Nothing is persisted between
// messages.
func (s *Service) HandleMessage(ctx context.Context, msg IncomingMessage) error {
	switch msg.Text {
	case "/start":
		return s.sender.SendMessage(ctx, msg.ChatID, fmt.Sprintf(
			"👋 Добро пожаловать в MAISON!\n\n"+
				"Ваш Telegram ID: `%d`\n"+
				"Username: @%s\n\n"+
				"Используйте кнопку 'Привязать Telegram' на сайте для связи аккаунтов.\n\n"+
				"После привязки вы будете получать уведомления о ваших заказах здесь.",
			msg.TelegramID, msg.Username,
		), telegram.ParseModeMarkdown)

	case "/link":
		user, err := s.userRepo.FindByTelegramID(ctx, msg.TelegramID)
		if err != nil {
			return err
		}
		if user != nil {
			name := "Не указано"
			if user.FullName != nil && *user.FullName != "" {
				name = *user.FullName
			}
			return s.sender.SendMessage(ctx, msg.ChatID, fmt.Sprintf(
				"✅ Ваш аккаунт уже привязан!\n\n"+
					"Email: %s\n"+
					"Имя: %s\n\n"+
					"Вы будете получать уведомления о заказах.",
				user.Email, name,
			), telegram.ParseModeMarkdown)
		}
		return s.sender.SendMessage(ctx, msg.ChatID, fmt.Sprintf(
			"📱 Привязка аккаунта\n\n"+
				"Ваш Telegram ID: `%d`\n\n"+
				"Войдите на сайт MAISON и нажмите кнопку 'Привязать Telegram' в личном кабинете.",
			msg.TelegramID,
		), telegram.ParseModeMarkdown)

	case "/help":
		return s.sender.SendMessage(ctx, msg.ChatID,
			"📖 Доступные команды:\n\n"+
				"/start - Начало работы с ботом\n"+
				"/link - Привязка аккаунта\n"+
				"/help - Справка по командам\n\n"+
				"После привязки аккаунта вы будете получать уведомления о статусе ваших заказов.",
			telegram.ParseModeMarkdown)

	default:
		return s.sender.SendMessage(ctx, msg.ChatID,
			"❓ Неизвестная команда. Используйте /help для списка доступных команд.",
			telegram.ParseModeMarkdown)
	}
}
