package redisstore

import (
	"context"
	"fmt"

	"birthday_reminder_bot/internal/domain/birthday"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Custom errors
var ErrBirthdayNotFound = fmt.Errorf("birthday not found")
var ErrStoreUnavailable = fmt.Errorf("birthday store unavailable")

// RedisBirthdayRepository stores birthdays under user:<subject_id>:birthday
// keys, values in the canonical YYYY-MM-DD form.
type RedisBirthdayRepository struct {
	client *redis.Client
	logger *logrus.Entry
}

func NewRedisBirthdayRepository(client *redis.Client, logger *logrus.Entry) *RedisBirthdayRepository {
	return &RedisBirthdayRepository{
		client: client,
		logger: logger.WithField("repository", "birthday"),
	}
}

// Set overwrites the subject's stored birthday. Last write wins; no history.
func (r *RedisBirthdayRepository) Set(ctx context.Context, subjectID string, d birthday.Date) error {
	err := r.client.Set(ctx, birthdayKey(subjectID), d.Canonical(), 0).Err()
	if err != nil {
		r.logger.WithError(err).WithField("subject_id", subjectID).Error("Failed to set birthday")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the stored date or ErrBirthdayNotFound. A store failure (after
// the client's retry) also reads as not-found: callers render "not set" either
// way, and the underlying error is only logged here.
func (r *RedisBirthdayRepository) Get(ctx context.Context, subjectID string) (birthday.Date, error) {
	value, err := r.client.Get(ctx, birthdayKey(subjectID)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.WithError(err).WithField("subject_id", subjectID).Error("Failed to get birthday")
		}
		return birthday.Date{}, ErrBirthdayNotFound
	}

	d, err := birthday.ParseCanonical(value)
	if err != nil {
		r.logger.WithField("subject_id", subjectID).WithField("value", value).Warn("Stored birthday value does not decode")
		return birthday.Date{}, ErrBirthdayNotFound
	}
	return d, nil
}

// ListAll scans every user:*:birthday key. Records whose key or value fails to
// decode are skipped, not fatal; order is whatever the scan produced.
func (r *RedisBirthdayRepository) ListAll(ctx context.Context) ([]birthday.Record, error) {
	var records []birthday.Record

	iter := r.client.Scan(ctx, 0, birthdayKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		subjectID, ok := subjectFromBirthdayKey(key)
		if !ok {
			r.logger.WithField("key", key).Warn("Skipping malformed birthday key")
			continue
		}

		value, err := r.client.Get(ctx, key).Result()
		if err != nil {
			r.logger.WithError(err).WithField("key", key).Warn("Skipping unreadable birthday record")
			continue
		}

		d, err := birthday.ParseCanonical(value)
		if err != nil {
			r.logger.WithField("key", key).WithField("value", value).Warn("Skipping undecodable birthday record")
			continue
		}

		records = append(records, birthday.Record{SubjectID: subjectID, Date: d})
	}
	if err := iter.Err(); err != nil {
		r.logger.WithError(err).Error("Failed to scan birthday keys")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return records, nil
}
