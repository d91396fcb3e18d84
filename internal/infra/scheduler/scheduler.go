package scheduler

import (
	"context"
	"fmt"
	"time"

	"weather_notification_bot/internal/app" // For NotificationService interface
	"weather_notification_bot/internal/infra/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// tickTimeout bounds one delivery run so it finishes before the next hour starts.
const tickTimeout = 50 * time.Minute

type NotificationScheduler struct {
	cronEngine     *cron.Cron
	notifService   app.NotificationService // Using the interface
	logger         *logrus.Entry
	loc            *time.Location
	cronSpecNotify string
	now            func() time.Time
}

func NewNotificationScheduler(
	notifService app.NotificationService,
	baseLogger *logrus.Entry,
	loc *time.Location,
	cronSpecNotify string, // e.g., "0 * * * *" (top of every hour)
) *NotificationScheduler {
	cronLogger := logger.CronLogger{Entry: baseLogger}
	return &NotificationScheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc), // Hours are interpreted in the configured zone, not server time
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
			cron.WithLogger(cronLogger),
		),
		notifService:   notifService,
		logger:         baseLogger,
		loc:            loc,
		cronSpecNotify: cronSpecNotify,
		now:            time.Now,
	}
}

// Start registers the hourly job and starts the cron engine.
func (s *NotificationScheduler) Start() error {
	s.logger.Info("Starting notification scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecNotify, func() {
		s.logger.Debug("Cron job triggered for scheduled notifications.")
		s.RunTick(s.now())
	})
	if err != nil {
		return fmt.Errorf("could not add notification cron job %q: %w", s.cronSpecNotify, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpecNotify).Info("Notification scheduler started.")
	return nil
}

// RunTick delivers to every user whose hour matches now's hour in the
// configured zone.
func (s *NotificationScheduler) RunTick(now time.Time) {
	hour := now.In(s.loc).Hour()
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	stats, err := s.notifService.DeliverDue(ctx, hour)
	if err != nil {
		s.logger.WithError(err).WithField("hour", hour).Error("Error during scheduled notification processing")
		return
	}
	if stats.Due > 0 {
		s.logger.WithFields(logrus.Fields{
			"hour":      hour,
			"due":       stats.Due,
			"delivered": stats.Delivered,
			"failed":    stats.Failed,
		}).Info("Scheduled notifications processed.")
	}
}

func (s *NotificationScheduler) Stop() {
	s.logger.Info("Stopping notification scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Notification scheduler gracefully stopped.")
}
