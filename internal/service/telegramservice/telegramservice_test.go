package telegramservice

import (
	"context"
	"errors"
	"testing"

	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/pkg/telegram"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockMessageSender) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	sender := NewMockMessageSender(ctrl)

	service := New(userRepo, sender)
	defer ctrl.Finish()
	return service, userRepo, sender
}

func strPtr(s string) *string { return &s }

func TestNotifyNewOrder(t *testing.T) {
	service, _, sender := NewMock(t)

	notification := OrderNotification{
		OrderID:     42,
		UserName:    "Анна",
		TotalAmount: 5980,
		ChatID:      777,
		Items: []NotificationItem{
			{Name: "Пальто", Price: 4990, Quantity: 1},
			{Name: "Шарф", Price: 990, Quantity: 1},
		},
	}

	tests := []struct {
		name          string
		notification  OrderNotification
		prepareMock   func()
		expectedError error
	}{
		{
			name:         "Notification sent",
			notification: notification,
			prepareMock: func() {
				sender.EXPECT().
					SendMessage(gomock.Any(), int64(777), gomock.Any(), telegram.ParseModeHTML).
					DoAndReturn(func(_ context.Context, _ int64, text, _ string) error {
						assert.Contains(t, text, "Новый заказ #42")
						assert.Contains(t, text, "Клиент: Анна")
						assert.Contains(t, text, "Сумма: 5980 ₽")
						assert.Contains(t, text, "• Пальто x1 - 4990 ₽")
						assert.Contains(t, text, "• Шарф x1 - 990 ₽")
						return nil
					})
			},
			expectedError: nil,
		},
		{
			name: "Missing name falls back to guest",
			notification: OrderNotification{
				OrderID: 42,
				ChatID:  777,
			},
			prepareMock: func() {
				sender.EXPECT().
					SendMessage(gomock.Any(), int64(777), gomock.Any(), telegram.ParseModeHTML).
					DoAndReturn(func(_ context.Context, _ int64, text, _ string) error {
						assert.Contains(t, text, "Клиент: Гость")
						return nil
					})
			},
			expectedError: nil,
		},
		{
			name:         "Delivery failure surfaces",
			notification: notification,
			prepareMock: func() {
				sender.EXPECT().
					SendMessage(gomock.Any(), int64(777), gomock.Any(), telegram.ParseModeHTML).
					Return(&telegram.DeliveryError{StatusCode: 400, Response: "chat not found"})
			},
			expectedError: &telegram.DeliveryError{StatusCode: 400, Response: "chat not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.NotifyNewOrder(context.Background(), tt.notification)
			if tt.expectedError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLinkAccount(t *testing.T) {
	service, userRepo, _ := NewMock(t)

	telegramID := int64(777)
	linked := &domain.User{
		ID:               1,
		Email:            "user@example.com",
		TelegramID:       &telegramID,
		TelegramUsername: strPtr("tg_user"),
	}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedUser  *domain.User
		expectedError error
	}{
		{
			name: "Account linked",
			prepareMock: func() {
				userRepo.EXPECT().
					UpdateTelegram(context.Background(), 1, int64(777), strPtr("tg_user")).
					Return(linked, nil)
			},
			expectedUser: linked,
		},
		{
			name: "User not found",
			prepareMock: func() {
				userRepo.EXPECT().
					UpdateTelegram(context.Background(), 1, int64(777), strPtr("tg_user")).
					Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name: "Repository error",
			prepareMock: func() {
				userRepo.EXPECT().
					UpdateTelegram(context.Background(), 1, int64(777), strPtr("tg_user")).
					Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			user, err := service.LinkAccount(context.Background(), 1, 777, strPtr("tg_user"))
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}

func TestHandleMessage(t *testing.T) {
	service, userRepo, sender := NewMock(t)

	msg := IncomingMessage{
		ChatID:     777,
		TelegramID: 555,
		Username:   "tg_user",
		Text:       "",
	}

	tests := []struct {
		name        string
		text        string
		prepareMock func()
		checkText   func(t *testing.T, text string)
	}{
		{
			name: "Start command greets with the telegram id",
			text: "/start",
			checkText: func(t *testing.T, text string) {
				assert.Contains(t, text, "Добро пожаловать в MAISON")
				assert.Contains(t, text, "`555`")
				assert.Contains(t, text, "@tg_user")
			},
		},
		{
			name: "Link command for an already linked account",
			text: "/link",
			prepareMock: func() {
				userRepo.EXPECT().FindByTelegramID(gomock.Any(), int64(555)).
					Return(&domain.User{Email: "user@example.com", FullName: strPtr("Анна")}, nil)
			},
			checkText: func(t *testing.T, text string) {
				assert.Contains(t, text, "уже привязан")
				assert.Contains(t, text, "Email: user@example.com")
				assert.Contains(t, text, "Имя: Анна")
			},
		},
		{
			name: "Link command for a linked account without a name",
			text: "/link",
			prepareMock: func() {
				userRepo.EXPECT().FindByTelegramID(gomock.Any(), int64(555)).
					Return(&domain.User{Email: "user@example.com"}, nil)
			},
			checkText: func(t *testing.T, text string) {
				assert.Contains(t, text, "Имя: Не указано")
			},
		},
		{
			name: "Link command for an unlinked account",
			text: "/link",
			prepareMock: func() {
				userRepo.EXPECT().FindByTelegramID(gomock.Any(), int64(555)).Return(nil, nil)
			},
			checkText: func(t *testing.T, text string) {
				assert.Contains(t, text, "Привязка аккаунта")
				assert.Contains(t, text, "`555`")
			},
		},
		{
			name: "Help command lists available commands",
			text: "/help",
			checkText: func(t *testing.T, text string) {
				assert.Contains(t, text, "Доступные команды")
				assert.Contains(t, text, "/start")
				assert.Contains(t, text, "/link")
				assert.Contains(t, text, "/help")
			},
		},
		{
			name: "Unknown command",
			text: "что это",
			checkText: func(t *testing.T, text string) {
				assert.Contains(t, text, "Неизвестная команда")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}
			sender.EXPECT().
				SendMessage(gomock.Any(), int64(777), gomock.Any(), telegram.ParseModeMarkdown).
				DoAndReturn(func(_ context.Context, _ int64, text, _ string) error {
					tt.checkText(t, text)
					return nil
				})

			msg.Text = tt.text
			err := service.HandleMessage(context.Background(), msg)
			assert.NoError(t, err)
		})
	}
}

func TestHandleMessageErrors(t *testing.T) {
	service, userRepo, sender := NewMock(t)

	t.Run("Lookup failure propagates", func(t *testing.T) {
		userRepo.EXPECT().FindByTelegramID(gomock.Any(), int64(555)).
			Return(nil, errors.New("database error"))

		err := service.HandleMessage(context.Background(), IncomingMessage{ChatID: 777, TelegramID: 555, Text: "/link"})
		assert.Error(t, err)
	})

	t.Run("Send failure propagates", func(t *testing.T) {
		sender.EXPECT().
			SendMessage(gomock.Any(), int64(777), gomock.Any(), telegram.ParseModeMarkdown).
			Return(errors.New("connection refused"))

		err := service.HandleMessage(context.Background(), IncomingMessage{ChatID: 777, TelegramID: 555, Text: "/help"})
		assert.Error(t, err)
	})
}
