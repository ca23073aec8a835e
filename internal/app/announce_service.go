package app

import (
	"context"
	"time"

	"birthday_reminder_bot/internal/domain/birthday"
	"birthday_reminder_bot/internal/domain/chat"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Announcer runs one monthly announcement pass. The scheduler depends on
// this interface rather than the concrete service.
type Announcer interface {
	Run(ctx context.Context, now time.Time) error
}

// AnnouncementLedger records which months have already been announced.
type AnnouncementLedger interface {
	Announced(ctx context.Context, month time.Time) bool
	MarkAnnounced(ctx context.Context, month time.Time)
}

// AnnounceService runs the monthly birthday announcement: read the whole
// store, bucket by proximity, and broadcast one message to every known
// community's preferred target.
type AnnounceService struct {
	repo      birthday.Repository
	directory chat.Directory
	client    chat.Client
	ledger    AnnouncementLedger
	limiter   *rate.Limiter
	logger    *logrus.Entry
}

func NewAnnounceService(
	repo birthday.Repository,
	directory chat.Directory,
	client chat.Client,
	ledger AnnouncementLedger,
	limiter *rate.Limiter,
	logger *logrus.Entry,
) *AnnounceService {
	return &AnnounceService{
		repo:      repo,
		directory: directory,
		client:    client,
		ledger:    ledger,
		limiter:   limiter,
		logger:    logger.WithField("service", "announce"),
	}
}

// Run executes one announcement pass for the month containing now.
// A delivery failure to one community never blocks the others; each send is
// independently attempted and independently logged.
func (s *AnnounceService) Run(ctx context.Context, now time.Time) error {
	runLogger := s.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"month":  now.Format("2006-01"),
	})

	if s.ledger.Announced(ctx, now) {
		runLogger.Info("Announcement for this month already sent. Skipping.")
		return nil
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		runLogger.WithError(err).Error("Failed to list birthdays for announcement")
		return err
	}

	forecast := birthday.BuildForecast(records, now)
	if forecast.Empty() {
		runLogger.Info("No birthdays this month or the next two. Nothing to announce.")
		s.ledger.MarkAnnounced(ctx, now)
		return nil
	}

	message := RenderAnnouncement(forecast, s.client.Mention, true)

	communities, err := s.directory.Communities(ctx)
	if err != nil {
		runLogger.WithError(err).Error("Failed to enumerate communities for announcement")
		return err
	}
	if len(communities) == 0 {
		runLogger.Warn("No known communities. Announcement has nowhere to go.")
		s.ledger.MarkAnnounced(ctx, now)
		return nil
	}

	delivered := 0
	for _, community := range communities {
		target, ok := community.BroadcastTarget()
		if !ok {
			runLogger.WithField("community_id", community.ID).Warn("Community has no broadcast target. Skipping.")
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			runLogger.WithError(err).Warn("Announcement run cancelled while pacing sends")
			break
		}

		if err := s.client.Broadcast(target, message); err != nil {
			runLogger.WithError(err).WithFields(logrus.Fields{
				"community_id": community.ID,
				"target_id":    target.ID,
			}).Error("Failed to deliver announcement")
			continue
		}
		delivered++
	}

	runLogger.WithFields(logrus.Fields{
		"communities": len(communities),
		"delivered":   delivered,
	}).Info("Announcement run complete")
	s.ledger.MarkAnnounced(ctx, now)
	return nil
}
