package scheduler

import (
	"context"
	"time"

	"birthday_reminder_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const runTimeout = 5 * time.Minute

// AnnouncementScheduler fires the monthly birthday announcement. The trigger
// condition lives in the cron expression itself (first of the month by
// default). An optional catch-up pass at startup covers restarts that missed
// the trigger day.
type AnnouncementScheduler struct {
	cronEngine       *cron.Cron
	announcer        app.Announcer
	ledger           app.AnnouncementLedger
	logger           *logrus.Entry
	cronSpecAnnounce string // e.g. "0 10 1 * *" (10:00 AM on the 1st)
	catchUp          bool
}

func NewAnnouncementScheduler(
	announcer app.Announcer,
	ledger app.AnnouncementLedger,
	logger *logrus.Entry,
	cronSpecAnnounce string,
	catchUp bool,
) *AnnouncementScheduler {
	return &AnnouncementScheduler{
		cronEngine:       cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		announcer:        announcer,
		ledger:           ledger,
		logger:           logger.WithField("component", "announcement_scheduler"),
		cronSpecAnnounce: cronSpecAnnounce,
		catchUp:          catchUp,
	}
}

func (s *AnnouncementScheduler) Start() {
	s.logger.Info("Starting announcement scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecAnnounce, func() {
		s.logger.Info("Cron job triggered for monthly announcement.")
		s.runOnce()
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add monthly announcement cron job")
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpecAnnounce).Info("Announcement scheduler started.")

	if s.catchUp {
		go s.catchUpPass()
	}
}

// catchUpPass runs a missed announcement right after startup: if the current
// month has no marker, the process restarted past the trigger day (or the
// trigger was missed entirely) and the announcement goes out now.
func (s *AnnouncementScheduler) catchUpPass() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if s.ledger.Announced(ctx, time.Now()) {
		s.logger.Debug("Catch-up check: this month already announced.")
		return
	}
	s.logger.Info("Catch-up check: no announcement recorded for this month. Running now.")
	s.runOnce()
}

func (s *AnnouncementScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := s.announcer.Run(ctx, time.Now()); err != nil {
		s.logger.WithError(err).Error("Announcement run failed")
	}
}

func (s *AnnouncementScheduler) Stop() {
	s.logger.Info("Stopping announcement scheduler...")
	ctx := s.cronEngine.Stop() // Stops new jobs, waits for running ones.
	<-ctx.Done()
	s.logger.Info("Announcement scheduler gracefully stopped.")
}
