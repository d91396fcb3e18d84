package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"weather_notification_bot/internal/domain/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	to   int64
	text string
	opts *telebot.SendOptions
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	u := to.(*telebot.User)
	msg := sentMessage{to: u.ID, text: what.(string)}
	if len(opts) > 0 {
		msg.opts = opts[0].(*telebot.SendOptions)
	}
	f.sent = append(f.sent, msg)
	return &telebot.Message{}, nil
}

func TestSendOptions_ReplyKeyboard(t *testing.T) {
	opts := SendOptions(chat.Reply{Text: "menu", Keyboard: chat.ReplyKeyboard(2, "a", "b", "c")})

	assert.Empty(t, opts.ParseMode)
	require.NotNil(t, opts.ReplyMarkup)
	assert.True(t, opts.ReplyMarkup.ResizeKeyboard)
	assert.Equal(t, [][]telebot.ReplyButton{{{Text: "a"}, {Text: "b"}}, {{Text: "c"}}}, opts.ReplyMarkup.ReplyKeyboard)
	assert.Empty(t, opts.ReplyMarkup.InlineKeyboard)
}

func TestSendOptions_InlineKeyboardKeepsPayload(t *testing.T) {
	kb := chat.InlineKeyboard([]chat.Button{{Text: "09:00", Data: "notif_time:9"}})
	opts := SendOptions(chat.Reply{Text: "pick", HTML: true, Keyboard: kb})

	assert.Equal(t, telebot.ModeHTML, opts.ParseMode)
	require.NotNil(t, opts.ReplyMarkup)
	require.Len(t, opts.ReplyMarkup.InlineKeyboard, 1)
	btn := opts.ReplyMarkup.InlineKeyboard[0][0]
	assert.Equal(t, "notif_time:9", btn.Data)
	assert.Empty(t, btn.Unique)
	assert.Empty(t, opts.ReplyMarkup.ReplyKeyboard)
}

func TestSendOptions_NoKeyboard(t *testing.T) {
	opts := SendOptions(chat.Reply{Text: "plain"})
	assert.Nil(t, opts.ReplyMarkup)
}

func TestSendReply(t *testing.T) {
	fs := &fakeSender{}
	a := newAdapter(fs, 1000)

	require.NoError(t, a.SendReply(context.Background(), 42, chat.Reply{Text: "hi", HTML: true}))
	require.Len(t, fs.sent, 1)
	assert.Equal(t, int64(42), fs.sent[0].to)
	assert.Equal(t, "hi", fs.sent[0].text)
	assert.Equal(t, telebot.ModeHTML, fs.sent[0].opts.ParseMode)
}

func TestSendReply_PropagatesSendError(t *testing.T) {
	fs := &fakeSender{err: errors.New("Forbidden: bot was blocked by the user")}
	a := newAdapter(fs, 1000)

	assert.Error(t, a.SendReply(context.Background(), 42, chat.Reply{Text: "hi"}))
}

func TestSendReply_RespectsContextWhileRateLimited(t *testing.T) {
	fs := &fakeSender{}
	a := newAdapter(fs, 0.01) // one token per 100s

	require.NoError(t, a.SendReply(context.Background(), 1, chat.Reply{Text: "first"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := a.SendReply(ctx, 2, chat.Reply{Text: "second"})

	assert.Error(t, err)
	assert.Len(t, fs.sent, 1)
}
