package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// AnnouncementMarker records which months have already had their birthday
// announcement, keyed birthdays:announced:<YYYY-MM>. It makes the monthly run
// idempotent and lets a restarted process detect a missed run.
type AnnouncementMarker struct {
	client *redis.Client
	logger *logrus.Entry
}

func NewAnnouncementMarker(client *redis.Client, logger *logrus.Entry) *AnnouncementMarker {
	return &AnnouncementMarker{
		client: client,
		logger: logger.WithField("repository", "announcement_marker"),
	}
}

// Announced reports whether the announcement for the given month already ran.
// A store failure reads as "already announced" so a flaky store cannot cause
// a duplicate broadcast.
func (m *AnnouncementMarker) Announced(ctx context.Context, month time.Time) bool {
	_, err := m.client.Get(ctx, announcedKey(month)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		m.logger.WithError(err).Warn("Could not read announcement marker; assuming announced")
	}
	return true
}

// MarkAnnounced records that the given month's announcement was sent.
func (m *AnnouncementMarker) MarkAnnounced(ctx context.Context, month time.Time) {
	err := m.client.Set(ctx, announcedKey(month), time.Now().UTC().Format(time.RFC3339), 0).Err()
	if err != nil {
		m.logger.WithError(err).Error("Failed to write announcement marker")
	}
}
