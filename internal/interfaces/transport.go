package interfaces

import (
	"context"
)

// Update is one incoming chat message, reduced to the fields the bot
// dispatch loop needs.
type Update struct {
	ID     int64
	ChatID int64
	Text   string
}

// ChatTransport is the messaging gateway the bot runs on. The concrete
// implementation lives in internal/telegram; tests substitute a fake.
type ChatTransport interface {
	// Updates long-polls for messages newer than offset.
	Updates(ctx context.Context, offset int64) ([]Update, error)

	// Send delivers a plain-text message to a chat.
	Send(ctx context.Context, chatID int64, text string) error
}
