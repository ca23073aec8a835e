package intent

import (
	"birthday_reminder_bot/internal/domain/birthday"
)

// Intent is the command a free-text message resolves to.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentSetBirthday
	IntentGetOwnBirthday
	IntentGetBirthday
	IntentListBirthdays
)

func (i Intent) String() string {
	switch i {
	case IntentSetBirthday:
		return "set_birthday"
	case IntentGetOwnBirthday:
		return "get_own_birthday"
	case IntentGetBirthday:
		return "get_birthday"
	case IntentListBirthdays:
		return "list_birthdays"
	default:
		return "unknown"
	}
}

// Classifier is the pluggable free-text understanding capability. The core
// only depends on its results, not on how classification is done.
type Classifier interface {
	// Classify maps text to an intent, IntentUnknown when nothing matches.
	Classify(text string) Intent
	// ExtractDate finds a date in the text, in either accepted layout.
	ExtractDate(text string) (birthday.Date, bool)
	// ExtractMention finds a referenced subject (an @name or a numeric id).
	ExtractMention(text string) (string, bool)
}
