package telegram

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maisonshop/backend/pkg/clients"
)

const apiBase = "https://api.telegram.org"

const (
	ParseModeHTML     = "HTML"
	ParseModeMarkdown = "Markdown"
)

// DeliveryError carries the Bot API status and response text when a send
// does not succeed.
type DeliveryError struct {
	StatusCode int
	Response   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("telegram send failed: status %d: %s", e.StatusCode, e.Response)
}

// Client is a minimal Bot API client; the only method this service needs is
// sendMessage.
type Client struct {
	token   string
	baseURL string
	client  clients.HTTPClientI
}

func NewClient(token string, client clients.HTTPClientI) *Client {
	return &Client{
		token:   token,
		baseURL: apiBase,
		client:  client,
	}
}

type sendMessagePayload struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text, parseMode string) error {
	payload, err := json.Marshal(sendMessagePayload{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return err
	}

	url := c.baseURL + "/bot" + c.token + "/sendMessage"
	statusCode, respBody, err := c.client.PostJSON(ctx, url, payload)
	if err != nil {
		return err
	}
	if statusCode != 200 {
		return &DeliveryError{StatusCode: statusCode, Response: string(respBody)}
	}
	return nil
}
