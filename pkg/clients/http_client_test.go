package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var payload map[string]any
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "value", payload["key"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewHTTPClient()
	statusCode, respBody, err := client.PostJSON(context.Background(), server.URL, []byte(`{"key":"value"}`))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, statusCode)
	assert.JSONEq(t, `{"ok":true}`, string(respBody))
}

func TestPostJSONConnectionError(t *testing.T) {
	client := NewHTTPClient()

	_, _, err := client.PostJSON(context.Background(), "http://127.0.0.1:0", nil)
	assert.Error(t, err)
}

func TestDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient()
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	assert.NoError(t, err)

	resp, err := client.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
