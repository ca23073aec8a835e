package app

import (
	"fmt"
	"math/rand"
	"strings"

	"birthday_reminder_bot/internal/domain/birthday"
)

// allMembersTag is prefixed to scheduler-originated broadcasts so the whole
// community is paged, not just subscribers of the thread.
const allMembersTag = "@all"

// announcementHeaders are the attention-grabbing first lines; one is picked
// at random per announcement.
var announcementHeaders = []string{
	"🎉 Birthday time! Gather round, everyone!",
	"🎂 Hear ye, hear ye — cake season approaches!",
	"🥳 Stop the presses: birthdays incoming!",
	"🎈 It's that time of the month — birthday roll call!",
}

// RenderBirthdayLine renders a single list/announcement entry:
// a mention plus the display-form date.
func RenderBirthdayLine(r birthday.Record, mention func(string) string) string {
	return fmt.Sprintf("• %s — %s", mention(r.SubjectID), r.Date.Display())
}

// RenderList renders the /list_birthdays reply, one line per record in store
// order (deliberately unsorted).
func RenderList(records []birthday.Record, mention func(string) string) string {
	if len(records) == 0 {
		return "No birthdays have been set yet."
	}
	var b strings.Builder
	b.WriteString("Here are the birthdays I know about:\n")
	for _, r := range records {
		b.WriteString(RenderBirthdayLine(r, mention))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderAnnouncement renders one announcement message: a random header,
// the this-month entries, and an optional "coming up" section. withTag
// prefixes the all-members mention used for scheduled broadcasts.
func RenderAnnouncement(f birthday.Forecast, mention func(string) string, withTag bool) string {
	var b strings.Builder
	if withTag {
		b.WriteString(allMembersTag)
		b.WriteString(" ")
	}
	b.WriteString(announcementHeaders[rand.Intn(len(announcementHeaders))])
	b.WriteString("\n")

	if len(f.ThisMonth) > 0 {
		b.WriteString("\nBirthdays this month:\n")
		for _, r := range f.ThisMonth {
			b.WriteString(RenderBirthdayLine(r, mention))
			b.WriteString("\n")
		}
	}
	if len(f.Upcoming) > 0 {
		b.WriteString("\nAnd coming up:\n")
		for _, r := range f.Upcoming {
			b.WriteString(RenderBirthdayLine(r, mention))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
