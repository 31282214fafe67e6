package dto

type NotifyOrderRequestDTO struct {
	OrderID        int            `json:"order_id"`
	UserName       string         `json:"user_name"`
	TotalAmount    float64        `json:"total_amount"`
	Items          []OrderItemDTO `json:"items"`
	TelegramChatID int64          `json:"telegram_chat_id" validate:"required"`
}

type NotifyOrderResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NotifyErrorDTO carries the transport's response text when delivery fails.
type NotifyErrorDTO struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type LinkAccountRequestDTO struct {
	UserID           int     `json:"user_id" validate:"required"`
	TelegramID       int64   `json:"telegram_id" validate:"required"`
	TelegramUsername *string `json:"telegram_username"`
}

type LinkedUserDTO struct {
	ID               int     `json:"id"`
	Email            string  `json:"email"`
	TelegramID       *int64  `json:"telegram_id"`
	TelegramUsername *string `json:"telegram_username"`
}

type LinkAccountResponseDTO struct {
	Success bool          `json:"success"`
	User    LinkedUserDTO `json:"user"`
}

// UpdateDTO mirrors the subset of a Telegram webhook update the bot reads.
type UpdateDTO struct {
	UpdateID int64       `json:"update_id"`
	Message  *MessageDTO `json:"message"`
}

type MessageDTO struct {
	Chat ChatDTO `json:"chat"`
	From FromDTO `json:"from"`
	Text string  `json:"text"`
}

type ChatDTO struct {
	ID int64 `json:"id"`
}

type FromDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type WebhookAckDTO struct {
	OK bool `json:"ok"`
}
