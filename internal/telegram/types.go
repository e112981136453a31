// Package telegram provides a client for the Telegram Bot API, covering
// the two methods the bot needs: getUpdates long polling and sendMessage.
package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents an error response from the Bot API.
type APIError struct {
	StatusCode  int
	Description string
	Method      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error: %s (status: %d, method: %s)", e.Description, e.StatusCode, e.Method)
}

// IsInvalidToken reports whether the error is an authentication failure.
// The process cannot recover from this; the token must be fixed.
func (e *APIError) IsInvalidToken() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsConflict reports whether another bot instance is polling with the same
// token. Only one getUpdates consumer is allowed per token.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsBadRequest reports a malformed request (e.g. unknown chat, bad markup).
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// apiResponse is the Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// update is the wire form of an incoming update.
type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message,omitempty"`
}

// message is the wire form of an incoming chat message.
type message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text,omitempty"`
	Chat      chat   `json:"chat"`
}

type chat struct {
	ID int64 `json:"id"`
}
