// Package notifier delivers messages to a Telegram chat.
package notifier

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends text messages to one configured chat.
type Telegram struct {
	api  telegramAPI
	chat string
	log  *slog.Logger
}

// New creates a Telegram notifier for the given bot token and chat.
// chat is either a numeric chat ID or a "@channel" username.
func New(token, chat string, log *slog.Logger) (*Telegram, error) {
	if _, err := chatTarget(chat, ""); err != nil {
		return nil, err
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Telegram{api: api, chat: chat, log: log}, nil
}

// Notify sends text to the chat and reports whether delivery succeeded.
// Failures are logged, never returned.
func (t *Telegram) Notify(text string) bool {
	msg, err := chatTarget(t.chat, text)
	if err != nil {
		t.log.Error("build message", "chat", t.chat, "error", err)
		return false
	}
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("send message", "chat", t.chat, "error", err)
		return false
	}
	t.log.Debug("message sent", "chat", t.chat)
	return true
}

func chatTarget(chat, text string) (tgbotapi.MessageConfig, error) {
	chat = strings.TrimSpace(chat)
	if strings.HasPrefix(chat, "@") && len(chat) > 1 {
		return tgbotapi.NewMessageToChannel(chat, text), nil
	}
	id, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("invalid chat %q: want numeric ID or @username", chat)
	}
	return tgbotapi.NewMessage(id, text), nil
}
