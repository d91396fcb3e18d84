// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"weather_notification_bot/internal/domain/chat"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// sender is the part of *telebot.Bot the adapter needs.
type sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
// Outbound sends share one limiter so scheduled bursts stay under Telegram's flood limits.
type TelebotAdapter struct {
	bot     sender
	limiter *rate.Limiter
}

func NewTelebotAdapter(b *telebot.Bot, perSecond float64) *TelebotAdapter {
	return newAdapter(b, perSecond)
}

func newAdapter(s sender, perSecond float64) *TelebotAdapter {
	return &TelebotAdapter{bot: s, limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// SendReply sends a reply to the specified recipient.
func (tba *TelebotAdapter) SendReply(ctx context.Context, recipientChatID int64, reply chat.Reply) error {
	if err := tba.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("send to %d not attempted: %w", recipientChatID, err)
	}

	recipient := &telebot.User{ID: recipientChatID} // Private chats share the user's ID
	_, err := tba.bot.Send(recipient, reply.Text, SendOptions(reply))
	return err
}

// SendOptions renders a reply's formatting and keyboard into telebot options.
func SendOptions(reply chat.Reply) *telebot.SendOptions {
	opts := &telebot.SendOptions{}
	if reply.HTML {
		opts.ParseMode = telebot.ModeHTML
	}
	if reply.Keyboard != nil {
		opts.ReplyMarkup = markup(reply.Keyboard)
	}
	return opts
}

func markup(kb *chat.Keyboard) *telebot.ReplyMarkup {
	m := &telebot.ReplyMarkup{}
	if kb.Inline {
		for _, row := range kb.Rows {
			buttons := make([]telebot.InlineButton, 0, len(row))
			for _, b := range row {
				// No Unique: the payload reaches OnCallback verbatim.
				buttons = append(buttons, telebot.InlineButton{Text: b.Text, Data: b.Data})
			}
			m.InlineKeyboard = append(m.InlineKeyboard, buttons)
		}
		return m
	}

	m.ResizeKeyboard = true
	for _, row := range kb.Rows {
		buttons := make([]telebot.ReplyButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telebot.ReplyButton{Text: b.Text})
		}
		m.ReplyKeyboard = append(m.ReplyKeyboard, buttons)
	}
	return m
}
