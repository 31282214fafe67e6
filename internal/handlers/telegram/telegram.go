package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/internal/dto"
	"github.com/maisonshop/backend/internal/service/telegramservice"
	"github.com/maisonshop/backend/pkg/telegram"
	"github.com/maisonshop/backend/pkg/utils"
	"go.uber.org/zap"
)

type Service interface {
	NotifyNewOrder(ctx context.Context, n telegramservice.OrderNotification) error
	LinkAccount(ctx context.Context, userID int, telegramID int64, username *string) (*domain.User, error)
	HandleMessage(ctx context.Context, msg telegramservice.IncomingMessage) error
}

type TelegramHandler struct {
	telegramService Service
	validate        *validator.Validate
}

func New(telegramService Service) *TelegramHandler {
	return &TelegramHandler{
		telegramService: telegramService,
		validate:        validator.New(),
	}
}

// NotifyOrder godoc
//
//	@Summary		Send a new-order notification
//	@Description	Format the order summary and push it to the given Telegram chat; best effort, never retried
//	@Tags			Telegram
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.NotifyOrderRequestDTO	true	"Notification payload"
//	@Success		200		{object}	dto.NotifyOrderResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing chat id"
//	@Failure		500		{object}	dto.NotifyErrorDTO	"Delivery failed"
//	@Router			/notify-order [post]
func (h *TelegramHandler) NotifyOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.NotifyOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Telegram chat ID required")
		return
	}

	notification := telegramservice.OrderNotification{
		OrderID:     req.OrderID,
		UserName:    req.UserName,
		TotalAmount: req.TotalAmount,
		ChatID:      req.TelegramChatID,
		Items:       make([]telegramservice.NotificationItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		notification.Items = append(notification.Items, telegramservice.NotificationItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if err := h.telegramService.NotifyNewOrder(r.Context(), notification); err != nil {
		var deliveryErr *telegram.DeliveryError
		if errors.As(err, &deliveryErr) {
			utils.RespondWithJSON(w, http.StatusInternalServerError, dto.NotifyErrorDTO{
				Error:   "Failed to send notification",
				Details: deliveryErr.Response,
			})
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send notification")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NotifyOrderResponseDTO{
		Success: true,
		Message: "Notification sent",
	})
}

// LinkAccount godoc
//
//	@Summary		Link a Telegram account
//	@Description	Store the Telegram identity on the user record
//	@Tags			Telegram
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LinkAccountRequestDTO	true	"Linking payload"
//	@Success		200		{object}	dto.LinkAccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing user_id or telegram_id"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/link-account [post]
func (h *TelegramHandler) LinkAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.LinkAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	user, err := h.telegramService.LinkAccount(r.Context(), req.UserID, req.TelegramID, req.TelegramUsername)
	if err != nil {
		if errors.Is(err, telegramservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LinkAccountResponseDTO{
		Success: true,
		User: dto.LinkedUserDTO{
			ID:               user.ID,
			Email:            user.Email,
			TelegramID:       user.TelegramID,
			TelegramUsername: user.TelegramUsername,
		},
	})
}

// Webhook godoc
//
//	@Summary		Telegram webhook
//	@Description	Accept a bot update; always acknowledged with ok even when command handling fails
//	@Tags			Telegram
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	dto.WebhookAckDTO
//	@Failure		500	{object}	utils.Response	"Unparseable update"
//	@Router			/ [post]
func (h *TelegramHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var update dto.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if update.Message == nil {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
		return
	}

	msg := telegramservice.IncomingMessage{
		ChatID:     update.Message.Chat.ID,
		TelegramID: update.Message.From.ID,
		Username:   update.Message.From.Username,
		Text:       update.Message.Text,
	}
	if err := h.telegramService.HandleMessage(r.Context(), msg); err != nil {
		// The webhook must stay acknowledged or Telegram keeps redelivering.
		zap.L().Error("can't handle bot message", zap.Error(err))
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{OK: true})
}
