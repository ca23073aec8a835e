package nlp

import (
	"testing"

	"birthday_reminder_bot/internal/domain/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want intent.Intent
	}{
		{"My birthday is 04-27-1990", intent.IntentSetBirthday},
		{"please set my birthday", intent.IntentSetBirthday},
		{"hey, remember my birthday: 1990-04-27", intent.IntentSetBirthday},
		{"When is my birthday?", intent.IntentGetOwnBirthday},
		{"what is my birthday again", intent.IntentGetOwnBirthday},
		{"when is @bob's birthday?", intent.IntentGetBirthday},
		{"whose birthday is in June?", intent.IntentGetBirthday},
		{"list all birthdays", intent.IntentListBirthdays},
		{"show everyone", intent.IntentListBirthdays},
		{"good morning", intent.IntentUnknown},
		{"", intent.IntentUnknown},
	}

	k := NewKeywordClassifier()
	for _, tc := range cases {
		assert.Equal(t, tc.want, k.Classify(tc.text), "text %q", tc.text)
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	k := NewKeywordClassifier()
	// Contains both "when is my birthday" and "when is"; the more specific
	// rule is ordered first.
	assert.Equal(t, intent.IntentGetOwnBirthday, k.Classify("when is my birthday"))
}

func TestExtractDate(t *testing.T) {
	k := NewKeywordClassifier()

	d, ok := k.ExtractDate("my birthday is 04-27-1990, don't forget!")
	require.True(t, ok)
	assert.Equal(t, "04-27-1990", d.Display())

	d, ok = k.ExtractDate("born 1990-04-27")
	require.True(t, ok)
	assert.Equal(t, "04-27-1990", d.Display())

	_, ok = k.ExtractDate("sometime in April")
	assert.False(t, ok)
}

func TestExtractMention(t *testing.T) {
	k := NewKeywordClassifier()

	name, ok := k.ExtractMention("when is @bob birthday")
	require.True(t, ok)
	assert.Equal(t, "bob", name)

	id, ok := k.ExtractMention("look up 123456789 please")
	require.True(t, ok)
	assert.Equal(t, "123456789", id)

	_, ok = k.ExtractMention("no reference here")
	assert.False(t, ok)
}
