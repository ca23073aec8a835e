// internal/infra/telegram/text_handlers.go
package telegram

import (
	"birthday_reminder_bot/internal/app"
	"birthday_reminder_bot/internal/domain/intent"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterTextHandlers wires the free-text path: private messages run through
// the intent classifier and, when that fails, the clarification conversation.
// Group messages only register the chat as a known community.
func RegisterTextHandlers(
	b *telebot.Bot,
	dispatcher *Dispatcher,
	classifier intent.Classifier,
	conversations *app.ConversationManager,
	baseLogger *logrus.Entry,
) {
	b.Handle(telebot.OnAddedToGroup, func(c telebot.Context) error {
		baseLogger.WithField("chat_id", c.Chat().ID).Info("Added to a group")
		dispatcher.RegisterCommunity(c.Chat())
		return nil
	})

	b.Handle(telebot.OnText, func(c telebot.Context) error {
		if c.Chat() != nil && c.Chat().Type != telebot.ChatPrivate {
			// Free text is only interpreted in private chats; in groups we just
			// learn that the community exists.
			dispatcher.RegisterCommunity(c.Chat())
			return nil
		}

		requesterID := c.Sender().ID
		text := c.Text()
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "free_text", "sender_id": requesterID})

		// A pending clarification consumes the reply first.
		outcome, err := conversations.Resolve(requesterID, text)
		switch err {
		case nil:
			if outcome.Done {
				logCtx.WithField("intent", outcome.Intent.String()).Info("Conversation resolved")
				return execute(c, dispatcher, classifier, conversations, logCtx, outcome.Intent, outcome.Argument)
			}
			return c.Send(outcome.Prompt)
		case app.ErrAmbiguousIntent:
			logCtx.Info("Clarification failed; conversation abandoned")
			return c.Send("Sorry, that wasn't one of the options. Just message me again when you want to try once more.")
		case app.ErrNoConversation:
			// Fresh message; fall through to classification.
		default:
			logCtx.WithError(err).Error("Conversation resolution failed")
			return c.Send("Something went wrong on my end. Please try again.")
		}

		classified := classifier.Classify(text)
		logCtx = logCtx.WithField("intent", classified.String())
		logCtx.Info("Free text classified")

		switch classified {
		case intent.IntentSetBirthday:
			if date, ok := classifier.ExtractDate(text); ok {
				return execute(c, dispatcher, classifier, conversations, logCtx, classified, date.Display())
			}
			return c.Send(conversations.BeginArgument(requesterID, classified))
		case intent.IntentGetBirthday:
			if mention, ok := classifier.ExtractMention(text); ok {
				return execute(c, dispatcher, classifier, conversations, logCtx, classified, mention)
			}
			return c.Send(conversations.BeginArgument(requesterID, classified))
		case intent.IntentGetOwnBirthday, intent.IntentListBirthdays:
			return execute(c, dispatcher, classifier, conversations, logCtx, classified, "")
		default:
			return c.Send(conversations.BeginClarification(requesterID))
		}
	})
}

// execute dispatches a fully-resolved intent. Arguments are re-extracted so a
// conversational reply like "it's 04-27-1990" still works; anything that
// really isn't parseable falls through to the dispatcher's own error reply.
func execute(
	c telebot.Context,
	dispatcher *Dispatcher,
	classifier intent.Classifier,
	conversations *app.ConversationManager,
	logCtx *logrus.Entry,
	resolved intent.Intent,
	argument string,
) error {
	switch resolved {
	case intent.IntentSetBirthday:
		if date, ok := classifier.ExtractDate(argument); ok {
			return dispatcher.SetBirthday(c, date.Display())
		}
		logCtx.WithField("argument", argument).Warn("Argument is not a date")
		return dispatcher.SetBirthday(c, argument)
	case intent.IntentGetOwnBirthday:
		return dispatcher.GetOwnBirthday(c)
	case intent.IntentGetBirthday:
		subjectRef := argument
		if mention, ok := classifier.ExtractMention(argument); ok {
			subjectRef = mention
		}
		return dispatcher.GetBirthday(c, Subject{ID: subjectRef, Display: "@" + subjectRef})
	case intent.IntentListBirthdays:
		return dispatcher.ListBirthdays(c)
	default:
		return c.Send(conversations.BeginClarification(c.Sender().ID))
	}
}
