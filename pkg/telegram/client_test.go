package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/maisonshop/backend/pkg/clients"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Client, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	httpClient := clients.NewMockHTTPClientI(ctrl)
	client := NewClient("test-token", httpClient)
	defer ctrl.Finish()

	return client, httpClient
}

func TestSendMessage(t *testing.T) {
	client, httpClient := NewMock(t)
	expectedURL := "https://api.telegram.org/bottest-token/sendMessage"

	tests := []struct {
		name        string
		prepareMock func()
		check       func(t *testing.T, err error)
	}{
		{
			name: "Message delivered",
			prepareMock: func() {
				httpClient.EXPECT().
					PostJSON(gomock.Any(), expectedURL, gomock.Any()).
					Return(200, []byte(`{"ok":true}`), nil)
			},
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Bot API rejects the message",
			prepareMock: func() {
				httpClient.EXPECT().
					PostJSON(gomock.Any(), expectedURL, gomock.Any()).
					Return(400, []byte(`{"ok":false,"description":"Bad Request: chat not found"}`), nil)
			},
			check: func(t *testing.T, err error) {
				var deliveryErr *DeliveryError
				assert.ErrorAs(t, err, &deliveryErr)
				assert.Equal(t, 400, deliveryErr.StatusCode)
				assert.Contains(t, deliveryErr.Response, "chat not found")
			},
		},
		{
			name: "Transport failure",
			prepareMock: func() {
				httpClient.EXPECT().
					PostJSON(gomock.Any(), expectedURL, gomock.Any()).
					Return(0, nil, errors.New("connection refused"))
			},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
				var deliveryErr *DeliveryError
				assert.False(t, errors.As(err, &deliveryErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := client.SendMessage(context.Background(), 42, "hello", ParseModeHTML)
			tt.check(t, err)
		})
	}
}

func TestSendMessagePayload(t *testing.T) {
	client, httpClient := NewMock(t)

	httpClient.EXPECT().
		PostJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body []byte) (int, []byte, error) {
			assert.JSONEq(t, `{"chat_id":42,"text":"hello","parse_mode":"Markdown"}`, string(body))
			return 200, []byte(`{"ok":true}`), nil
		})

	err := client.SendMessage(context.Background(), 42, "hello", ParseModeMarkdown)
	assert.NoError(t, err)
}
