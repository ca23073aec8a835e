package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"birthday_reminder_bot/internal/app"
	"birthday_reminder_bot/internal/domain/birthday"
	"birthday_reminder_bot/internal/domain/chat"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const easterEggReply = "My birthday? I was born the moment this process started — every day of uptime is a celebration. 🤖🎂"

// Subject is a resolved command target: a member referenced by mention,
// numeric id, or plain @name text.
type Subject struct {
	ID      string
	Display string
}

// Dispatcher maps resolved commands onto the birthday service and renders
// replies. Both the slash-command handlers and the free-text path go through
// it, so the two surfaces cannot drift apart.
type Dispatcher struct {
	ctx       context.Context
	svc       *app.BirthdayService
	adapter   *TelebotAdapter
	directory chat.Directory
	logger    *logrus.Entry
	bot       *telebot.Bot
}

func NewDispatcher(
	ctx context.Context,
	svc *app.BirthdayService,
	adapter *TelebotAdapter,
	directory chat.Directory,
	logger *logrus.Entry,
	bot *telebot.Bot,
) *Dispatcher {
	return &Dispatcher{
		ctx:       ctx,
		svc:       svc,
		adapter:   adapter,
		directory: directory,
		logger:    logger,
		bot:       bot,
	}
}

// SetBirthday handles the set operation for the sender.
func (d *Dispatcher) SetBirthday(c telebot.Context, rawDate string) error {
	subjectID := strconv.FormatInt(c.Sender().ID, 10)
	logCtx := d.logger.WithFields(logrus.Fields{"operation": "set_birthday", "sender_id": c.Sender().ID})

	date, err := d.svc.SetBirthday(d.ctx, subjectID, rawDate)
	if err != nil {
		if err == birthday.ErrInvalidDateFormat {
			logCtx.WithField("raw_date", rawDate).Warn("Invalid date format")
			return c.Send("That doesn't look like a date I understand. Please use MM-DD-YYYY or YYYY-MM-DD, e.g. 04-27-1990.")
		}
		logCtx.WithError(err).Error("Failed to set birthday")
		return c.Send("I couldn't save your birthday just now. Please try again in a moment.")
	}
	return c.Send(fmt.Sprintf("Your birthday has been set to %s. 🎂", date.Display()))
}

// GetOwnBirthday handles the get operation with the sender as target.
func (d *Dispatcher) GetOwnBirthday(c telebot.Context) error {
	sender := c.Sender()
	return d.GetBirthday(c, Subject{ID: strconv.FormatInt(sender.ID, 10), Display: "Your"})
}

// GetBirthday handles the get operation for an arbitrary subject.
// Asking about the bot itself gets the easter egg, not a store read.
func (d *Dispatcher) GetBirthday(c telebot.Context, subject Subject) error {
	logCtx := d.logger.WithFields(logrus.Fields{"operation": "get_birthday", "sender_id": c.Sender().ID, "subject_id": subject.ID})

	if d.isSelf(subject) {
		logCtx.Debug("Easter egg triggered")
		return c.Send(easterEggReply)
	}

	date, err := d.svc.GetBirthday(d.ctx, subject.ID)
	if err != nil {
		if !app.IsNotFound(err) {
			logCtx.WithError(err).Error("Failed to get birthday")
		}
		if subject.Display == "Your" {
			return c.Send("You haven't set your birthday yet. Use /set_birthday to add it.")
		}
		return c.Send(fmt.Sprintf("%s has not set their birthday yet.", subject.Display))
	}

	if subject.Display == "Your" {
		return c.Send(fmt.Sprintf("Your birthday is on %s.", date.Display()))
	}
	return c.Send(fmt.Sprintf("%s's birthday is on %s.", subject.Display, date.Display()))
}

// ListBirthdays handles the list operation.
func (d *Dispatcher) ListBirthdays(c telebot.Context) error {
	logCtx := d.logger.WithFields(logrus.Fields{"operation": "list_birthdays", "sender_id": c.Sender().ID})

	records, err := d.svc.ListBirthdays(d.ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list birthdays")
		return c.Send("I couldn't read the birthday list just now. Please try again in a moment.")
	}
	return c.Send(app.RenderList(records, d.adapter.Mention), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

// ForecastBirthdays handles the forecast operation. With broadcast the
// rendered message goes to the community's preferred target and the requester
// gets a private confirmation; without it the message goes only to the
// requester.
func (d *Dispatcher) ForecastBirthdays(c telebot.Context, broadcast bool) error {
	logCtx := d.logger.WithFields(logrus.Fields{"operation": "forecast_birthdays", "sender_id": c.Sender().ID, "broadcast": broadcast})

	forecast, err := d.svc.Forecast(d.ctx, time.Now())
	if err != nil {
		logCtx.WithError(err).Error("Failed to build forecast")
		return c.Send("I couldn't read the birthday list just now. Please try again in a moment.")
	}

	if forecast.Empty() {
		return c.Send("No birthdays this month or in the next two months.")
	}

	if !broadcast {
		return c.Send(app.RenderAnnouncement(forecast, d.adapter.Mention, false), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}

	community := c.Chat()
	if community == nil || community.Type == telebot.ChatPrivate {
		return c.Send("Broadcasting only works from inside a community chat. Run this command in the group you want announced.")
	}

	if err := d.svc.BroadcastForecast(d.ctx, community.ID, forecast); err != nil {
		logCtx.WithError(err).Error("Failed to broadcast forecast")
		return c.Send("I couldn't deliver the announcement to this community's broadcast channel.")
	}

	if err := d.adapter.SendPrivate(c.Sender().ID, "Birthday forecast has been announced. 📣"); err != nil {
		logCtx.WithError(err).Warn("Broadcast succeeded but private confirmation failed")
	}
	return nil
}

// RegisterCommunity records the chat as a known community so the monthly
// announcement can reach it.
func (d *Dispatcher) RegisterCommunity(chatInfo *telebot.Chat) {
	if chatInfo == nil || (chatInfo.Type != telebot.ChatGroup && chatInfo.Type != telebot.ChatSuperGroup) {
		return
	}
	community := chat.Community{
		ID:      chatInfo.ID,
		Title:   chatInfo.Title,
		Targets: []chat.Target{{ID: chatInfo.ID, Name: chatInfo.Title}},
	}
	if err := d.directory.Register(d.ctx, community); err != nil {
		d.logger.WithError(err).WithField("chat_id", chatInfo.ID).Warn("Failed to register community")
	}
}

func (d *Dispatcher) isSelf(subject Subject) bool {
	me := d.bot.Me
	if me == nil {
		return false
	}
	if subject.ID == strconv.FormatInt(me.ID, 10) {
		return true
	}
	return me.Username != "" && subject.ID == me.Username
}
