// internal/infra/telegram/client.go
package telegram

import (
	"fmt"
	"strconv"

	"birthday_reminder_bot/internal/domain/chat"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the chat.Client interface using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendPrivate sends a text message visible only to the given user.
func (tba *TelebotAdapter) SendPrivate(userID int64, text string) error {
	recipient := &telebot.User{ID: userID}
	_, err := tba.bot.Send(recipient, text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	return err
}

// Broadcast sends a text message to a community's broadcast target.
func (tba *TelebotAdapter) Broadcast(target chat.Target, text string) error {
	recipient := &telebot.Chat{ID: target.ID}
	_, err := tba.bot.Send(recipient, text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	return err
}

// Mention renders a subject id as a Telegram mention. Numeric ids become
// tg://user deep links; anything else is treated as a username.
func (tba *TelebotAdapter) Mention(subjectID string) string {
	if id, err := strconv.ParseInt(subjectID, 10, 64); err == nil {
		return fmt.Sprintf("[%d](tg://user?id=%d)", id, id)
	}
	return "@" + subjectID
}
