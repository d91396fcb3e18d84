// internal/infra/telegram/handlers.go
package telegram

import (
	"context"

	"weather_notification_bot/internal/app"
	"weather_notification_bot/internal/domain/chat"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotHandlers wires user-facing updates to the router. /start and /help are
// registered explicitly; every other text, including menu labels, goes through OnText.
func RegisterBotHandlers(ctx context.Context, b *telebot.Bot, router *app.Router, baseLogger *logrus.Entry) {
	textLogger := baseLogger.WithField("handler_group", "text")

	onText := func(c telebot.Context) error {
		user := c.Sender()
		if user == nil {
			return nil
		}
		replies := router.HandleText(ctx, app.TextEvent{
			UserID:    user.ID,
			FirstName: user.FirstName,
			Text:      c.Text(),
		})
		return sendAll(c, replies, textLogger.WithField("sender_id", user.ID))
	}

	b.Handle("/start", onText)
	b.Handle("/help", onText)
	b.Handle(telebot.OnText, onText)

	callbackLogger := baseLogger.WithField("handler_group", "callback")
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil || cb.Sender == nil {
			return nil
		}
		logCtx := callbackLogger.WithFields(logrus.Fields{"sender_id": cb.Sender.ID, "callback_data": cb.Data})
		logCtx.Debug("Received callback")

		res := router.HandleCallback(ctx, cb.Sender.ID, cb.Data)

		// Always dismiss the spinner on the pressed button, even if nothing else is sent.
		if err := c.Respond(&telebot.CallbackResponse{Text: res.Notice}); err != nil {
			logCtx.WithError(err).Warn("Failed to respond to callback")
		}
		return sendAll(c, res.Replies, logCtx)
	})
}

func sendAll(c telebot.Context, replies []chat.Reply, logCtx *logrus.Entry) error {
	for _, r := range replies {
		if err := c.Send(r.Text, SendOptions(r)); err != nil {
			logCtx.WithError(err).Error("Failed to send reply")
			return err
		}
	}
	return nil
}
