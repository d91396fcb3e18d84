package telegram

import (
	"context"

	"weather_notification_bot/internal/domain/chat"
)

// Client defines an interface for sending unsolicited messages via the chat transport.
// This keeps the scheduler and services independent of the bot library.
type Client interface {
	SendReply(ctx context.Context, recipientChatID int64, reply chat.Reply) error
}
