package telegram

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBirthdayHandlers registers the four birthday commands plus
// /start and /help.
func RegisterBirthdayHandlers(b *telebot.Bot, dispatcher *Dispatcher, baseLogger *logrus.Entry) {
	b.Handle("/start", func(c telebot.Context) error {
		baseLogger.WithFields(logrus.Fields{"handler": "/start", "sender_id": c.Sender().ID}).Info("Command received")
		dispatcher.RegisterCommunity(c.Chat())
		return c.Send("Hi! I keep track of birthdays in this community. 🎂\n" +
			"Set yours with /set_birthday MM-DD-YYYY and I'll announce it when the month comes around.\n" +
			"Use /help to see everything I can do.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		baseLogger.WithFields(logrus.Fields{"handler": "/help", "sender_id": c.Sender().ID}).Info("Command received")
		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/set_birthday <date>`\n - Set your birthday. Accepts MM-DD-YYYY or YYYY-MM-DD.\n\n")
		helpText.WriteString("`/get_birthday <user>`\n - Look up a member's birthday. Mention them or give their id.\n\n")
		helpText.WriteString("`/list_birthdays`\n - List every birthday I know about.\n\n")
		helpText.WriteString("`/forecast_birthdays [broadcast]`\n - Show birthdays this month and the next two. Add `broadcast` to announce it to the community.\n\n")
		helpText.WriteString("You can also just talk to me in a private chat — I'll do my best to figure out what you mean.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/set_birthday", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{"handler": "/set_birthday", "sender_id": c.Sender().ID})
		handlerLogger.Info("Command received")
		dispatcher.RegisterCommunity(c.Chat())

		args := c.Args()
		if len(args) == 0 {
			handlerLogger.Warn("Missing date argument")
			return c.Send("Please include the date: /set_birthday MM-DD-YYYY (or YYYY-MM-DD).")
		}
		return dispatcher.SetBirthday(c, strings.Join(args, " "))
	})

	b.Handle("/get_birthday", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{"handler": "/get_birthday", "sender_id": c.Sender().ID})
		handlerLogger.Info("Command received")
		dispatcher.RegisterCommunity(c.Chat())

		subject, ok := subjectFromMessage(c)
		if !ok {
			handlerLogger.Warn("No subject in command")
			return c.Send("Whose birthday? Use /get_birthday @name, or mention them.")
		}
		return dispatcher.GetBirthday(c, subject)
	})

	b.Handle("/list_birthdays", func(c telebot.Context) error {
		baseLogger.WithFields(logrus.Fields{"handler": "/list_birthdays", "sender_id": c.Sender().ID}).Info("Command received")
		dispatcher.RegisterCommunity(c.Chat())
		return dispatcher.ListBirthdays(c)
	})

	b.Handle("/forecast_birthdays", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{"handler": "/forecast_birthdays", "sender_id": c.Sender().ID})
		handlerLogger.Info("Command received")
		dispatcher.RegisterCommunity(c.Chat())

		broadcast := false
		if args := c.Args(); len(args) > 0 {
			switch strings.ToLower(args[0]) {
			case "broadcast", "true":
				broadcast = true
			case "false":
			default:
				handlerLogger.WithField("arg", args[0]).Warn("Invalid argument")
				return c.Send("Use /forecast_birthdays on its own, or /forecast_birthdays broadcast to announce it.")
			}
		}
		return dispatcher.ForecastBirthdays(c, broadcast)
	})
}

// subjectFromMessage resolves the command's target member. Rich text_mention
// entities carry the user directly; plain @mentions and bare arguments fall
// back to the textual reference.
func subjectFromMessage(c telebot.Context) (Subject, bool) {
	msg := c.Message()
	if msg != nil {
		for _, entity := range msg.Entities {
			switch entity.Type {
			case telebot.EntityTMention:
				if entity.User != nil {
					return Subject{
						ID:      strconv.FormatInt(entity.User.ID, 10),
						Display: entity.User.FirstName,
					}, true
				}
			case telebot.EntityMention:
				name := strings.TrimPrefix(msg.EntityText(entity), "@")
				if name != "" {
					return Subject{ID: name, Display: "@" + name}, true
				}
			}
		}
	}

	args := c.Args()
	if len(args) == 0 {
		return Subject{}, false
	}
	ref := strings.TrimPrefix(strings.TrimSpace(args[0]), "@")
	if ref == "" {
		return Subject{}, false
	}
	return Subject{ID: ref, Display: "@" + ref}, true
}
