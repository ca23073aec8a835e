package redisstore

import (
	"context"
	"fmt"

	"birthday_reminder_bot/internal/domain/chat"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisCommunityRepository tracks the group chats the bot has been added to,
// under chat:<chat_id> keys holding the chat title. Each known chat is a
// community with a single broadcast target: the chat itself.
type RedisCommunityRepository struct {
	client *redis.Client
	logger *logrus.Entry
}

func NewRedisCommunityRepository(client *redis.Client, logger *logrus.Entry) *RedisCommunityRepository {
	return &RedisCommunityRepository{
		client: client,
		logger: logger.WithField("repository", "community"),
	}
}

func (r *RedisCommunityRepository) Register(ctx context.Context, c chat.Community) error {
	err := r.client.Set(ctx, communityKey(c.ID), c.Title, 0).Err()
	if err != nil {
		r.logger.WithError(err).WithField("chat_id", c.ID).Error("Failed to register community")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *RedisCommunityRepository) Communities(ctx context.Context) ([]chat.Community, error) {
	var communities []chat.Community

	iter := r.client.Scan(ctx, 0, communityKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		chatID, ok := chatIDFromCommunityKey(key)
		if !ok {
			r.logger.WithField("key", key).Warn("Skipping malformed community key")
			continue
		}

		title, err := r.client.Get(ctx, key).Result()
		if err != nil {
			r.logger.WithError(err).WithField("key", key).Warn("Skipping unreadable community record")
			continue
		}

		communities = append(communities, chat.Community{
			ID:      chatID,
			Title:   title,
			Targets: []chat.Target{{ID: chatID, Name: title}},
		})
	}
	if err := iter.Err(); err != nil {
		r.logger.WithError(err).Error("Failed to scan community keys")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return communities, nil
}
