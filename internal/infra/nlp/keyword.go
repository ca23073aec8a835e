// Package nlp provides a shallow keyword implementation of the intent
// classifier. It is deliberately not a parser or a model; the application
// only depends on the intent.Classifier interface, so a smarter
// implementation can be swapped in without touching the core.
package nlp

import (
	"strings"

	"birthday_reminder_bot/internal/domain/birthday"
	"birthday_reminder_bot/internal/domain/intent"
)

type rule struct {
	substring string
	intent    intent.Intent
}

// rules are evaluated in order against the lowercased text; first match wins.
var rules = []rule{
	{"my birthday is", intent.IntentSetBirthday},
	{"set my birthday", intent.IntentSetBirthday},
	{"remember my birthday", intent.IntentSetBirthday},
	{"when is my birthday", intent.IntentGetOwnBirthday},
	{"what is my birthday", intent.IntentGetOwnBirthday},
	{"when is", intent.IntentGetBirthday},
	{"whose birthday", intent.IntentGetBirthday},
	{"list", intent.IntentListBirthdays},
	{"all birthdays", intent.IntentListBirthdays},
	{"everyone", intent.IntentListBirthdays},
}

// KeywordClassifier implements intent.Classifier with ordered substring rules.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (k *KeywordClassifier) Classify(text string) intent.Intent {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lowered, r.substring) {
			return r.intent
		}
	}
	return intent.IntentUnknown
}

// ExtractDate scans tokens for the first one that parses in either accepted
// date layout.
func (k *KeywordClassifier) ExtractDate(text string) (birthday.Date, bool) {
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,!?()")
		if d, err := birthday.ParseDate(token); err == nil {
			return d, true
		}
	}
	return birthday.Date{}, false
}

// ExtractMention finds the first @name or all-digit token and returns it as a
// subject reference.
func (k *KeywordClassifier) ExtractMention(text string) (string, bool) {
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, ".,!?()")
		if name, found := strings.CutPrefix(token, "@"); found && name != "" {
			return name, true
		}
		if token != "" && isDigits(token) {
			return token, true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
