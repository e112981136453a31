package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getUpdates", r.URL.Path)
		assert.Equal(t, "41", r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":41,"message":{"message_id":7,"text":"/start","chat":{"id":1001}}},
			{"update_id":42,"message":{"message_id":8,"chat":{"id":1001}}},
			{"update_id":43,"message":{"message_id":9,"text":"AAPL","chat":{"id":2002}}}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))

	updates, err := client.Updates(context.Background(), 41)
	require.NoError(t, err)

	// The textless update is skipped
	require.Len(t, updates, 2)
	assert.Equal(t, int64(41), updates[0].ID)
	assert.Equal(t, int64(1001), updates[0].ChatID)
	assert.Equal(t, "/start", updates[0].Text)
	assert.Equal(t, int64(43), updates[1].ID)
	assert.Equal(t, int64(2002), updates[1].ChatID)
	assert.Equal(t, "AAPL", updates[1].Text)
}

func TestSend(t *testing.T) {
	var gotChatID, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		gotChatID = r.URL.Query().Get("chat_id")
		gotText = r.URL.Query().Get("text")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":10}}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))

	err := client.Send(context.Background(), 1001, "hello")
	require.NoError(t, err)
	assert.Equal(t, "1001", gotChatID)
	assert.Equal(t, "hello", gotText)
}

func TestSendInvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewClient("bad-token", WithBaseURL(server.URL))

	err := client.Send(context.Background(), 1001, "hello")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.True(t, apiErr.IsInvalidToken())
	assert.False(t, apiErr.IsConflict())
	assert.Equal(t, "Unauthorized", apiErr.Description)
}

func TestUpdatesConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"ok":false,"error_code":409,"description":"Conflict: terminated by other getUpdates request"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))

	_, err := client.Updates(context.Background(), 0)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsConflict())
}
