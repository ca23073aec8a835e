package app

import (
	"context"
	"fmt"
	"time"

	"birthday_reminder_bot/internal/domain/birthday"
	"birthday_reminder_bot/internal/domain/chat"
	"birthday_reminder_bot/internal/infra/redisstore"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the birthday service
var ErrCommunityNotFound = fmt.Errorf("community is not known to the bot")
var ErrNoBroadcastTarget = fmt.Errorf("community has no broadcast target")

// BirthdayService implements the four command operations over the store.
// Handlers own the transport; this service owns the semantics.
type BirthdayService struct {
	repo      birthday.Repository
	directory chat.Directory
	client    chat.Client
	logger    *logrus.Entry
}

func NewBirthdayService(
	repo birthday.Repository,
	directory chat.Directory,
	client chat.Client,
	logger *logrus.Entry,
) *BirthdayService {
	return &BirthdayService{
		repo:      repo,
		directory: directory,
		client:    client,
		logger:    logger.WithField("service", "birthday"),
	}
}

// SetBirthday parses the raw date text and stores it for the subject.
// On birthday.ErrInvalidDateFormat nothing is written.
func (s *BirthdayService) SetBirthday(ctx context.Context, subjectID, rawDate string) (birthday.Date, error) {
	d, err := birthday.ParseDate(rawDate)
	if err != nil {
		return birthday.Date{}, err
	}
	if err := s.repo.Set(ctx, subjectID, d); err != nil {
		s.logger.WithError(err).WithField("subject_id", subjectID).Error("Failed to store birthday")
		return birthday.Date{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"subject_id": subjectID,
		"date":       d.Canonical(),
	}).Info("Birthday stored")
	return d, nil
}

// GetBirthday returns the subject's stored date, or
// redisstore.ErrBirthdayNotFound when absent (or unreadable, by contract).
func (s *BirthdayService) GetBirthday(ctx context.Context, subjectID string) (birthday.Date, error) {
	return s.repo.Get(ctx, subjectID)
}

// ListBirthdays enumerates every stored record, in store order.
func (s *BirthdayService) ListBirthdays(ctx context.Context) ([]birthday.Record, error) {
	return s.repo.ListAll(ctx)
}

// Forecast buckets all stored birthdays against today.
func (s *BirthdayService) Forecast(ctx context.Context, today time.Time) (birthday.Forecast, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return birthday.Forecast{}, err
	}
	return birthday.BuildForecast(records, today), nil
}

// BroadcastForecast sends the rendered forecast to the community's preferred
// broadcast target. ErrNoBroadcastTarget is a delivery error the caller must
// surface, never a silent drop.
func (s *BirthdayService) BroadcastForecast(ctx context.Context, communityID int64, forecast birthday.Forecast) error {
	communities, err := s.directory.Communities(ctx)
	if err != nil {
		return err
	}
	var community *chat.Community
	for i := range communities {
		if communities[i].ID == communityID {
			community = &communities[i]
			break
		}
	}
	if community == nil {
		return ErrCommunityNotFound
	}

	target, ok := community.BroadcastTarget()
	if !ok {
		return ErrNoBroadcastTarget
	}

	message := RenderAnnouncement(forecast, s.client.Mention, true)
	if err := s.client.Broadcast(target, message); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"community_id": communityID,
			"target_id":    target.ID,
		}).Error("Failed to broadcast forecast")
		return err
	}
	s.logger.WithField("community_id", communityID).Info("Forecast broadcast sent")
	return nil
}

// IsNotFound reports whether the error means "no birthday stored". A store
// timeout reads the same way on purpose; the distinction stays in the logs.
func IsNotFound(err error) bool {
	return err == redisstore.ErrBirthdayNotFound
}
