package redisstore

import (
	"fmt"
	"strings"
	"time"
)

const (
	birthdayKeyPattern  = "user:*:birthday"
	communityKeyPattern = "chat:*"
)

func birthdayKey(subjectID string) string {
	return fmt.Sprintf("user:%s:birthday", subjectID)
}

// subjectFromBirthdayKey recovers the subject id from a stored key.
// ok is false for keys that do not follow the user:<id>:birthday schema.
func subjectFromBirthdayKey(key string) (string, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != "user" || parts[2] != "birthday" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func communityKey(chatID int64) string {
	return fmt.Sprintf("chat:%d", chatID)
}

func chatIDFromCommunityKey(key string) (int64, bool) {
	rest, found := strings.CutPrefix(key, "chat:")
	if !found || rest == "" {
		return 0, false
	}
	var id int64
	if _, err := fmt.Sscanf(rest, "%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

func announcedKey(month time.Time) string {
	return fmt.Sprintf("birthdays:announced:%s", month.Format("2006-01"))
}
