// internal/app/notification_service.go
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"weather_notification_bot/internal/domain/forecast"
	"weather_notification_bot/internal/domain/preference"
	domainTelegram "weather_notification_bot/internal/domain/telegram"
	"weather_notification_bot/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const deliveryTimeout = 30 * time.Second

// NotificationService defines the operations for scheduled weather delivery.
type NotificationService interface {
	// DeliverDue sends the current report to every user due at hour.
	// Per-user failures are logged and counted, never returned.
	DeliverDue(ctx context.Context, hour int) (DeliveryStats, error)
}

// DeliveryStats summarizes one tick.
type DeliveryStats struct {
	Due       int
	Delivered int
	Failed    int
}

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	prefs          preference.Repository
	forecasts      ReportSource
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
	metrics        *metrics.Recorder
	workers        int
}

func NewNotificationServiceImpl(
	prefs preference.Repository,
	forecasts ReportSource,
	tc domainTelegram.Client,
	logger *logrus.Entry,
	recorder *metrics.Recorder,
	workers int,
) *NotificationServiceImpl {
	if workers < 1 {
		workers = 1
	}
	return &NotificationServiceImpl{
		prefs:          prefs,
		forecasts:      forecasts,
		telegramClient: tc,
		logger:         logger,
		metrics:        recorder,
		workers:        workers,
	}
}

// DeliverDue lists due users once and fans deliveries out over a bounded pool.
// A failed user is skipped until the next matching hour; there is no retry
// within a tick, and a repeated tick for the same hour delivers again.
func (s *NotificationServiceImpl) DeliverDue(ctx context.Context, hour int) (DeliveryStats, error) {
	tickLogger := s.logger.WithFields(logrus.Fields{"tick_id": uuid.NewString(), "hour": hour})

	due, err := s.prefs.ListDue(ctx, hour)
	if err != nil {
		tickLogger.WithError(err).Error("Failed to list due users")
		return DeliveryStats{}, fmt.Errorf("failed to list due users for hour %d: %w", hour, err)
	}
	s.metrics.Tick(len(due))
	if len(due) == 0 {
		tickLogger.Debug("No users due this hour")
		return DeliveryStats{}, nil
	}
	tickLogger.Infof("Delivering scheduled forecasts to %d users", len(due))

	var delivered, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for _, u := range due {
		g.Go(func() error {
			userLogger := tickLogger.WithFields(logrus.Fields{"user_id": u.UserID, "location": u.Location})
			if err := s.deliverOne(ctx, u); err != nil {
				userLogger.WithError(err).Error("Scheduled delivery failed")
				failed.Add(1)
				s.metrics.Delivery("failed")
				return nil
			}
			userLogger.Debug("Scheduled delivery sent")
			delivered.Add(1)
			s.metrics.Delivery("ok")
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	stats := DeliveryStats{Due: len(due), Delivered: int(delivered.Load()), Failed: int(failed.Load())}
	tickLogger.WithFields(logrus.Fields{"delivered": stats.Delivered, "failed": stats.Failed}).Info("Scheduled delivery tick finished")
	return stats, nil
}

func (s *NotificationServiceImpl) deliverOne(ctx context.Context, u preference.DueUser) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during delivery: %v", p)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	rep, err := s.forecasts.GetReport(ctx, u.UserID, u.Location, forecast.KindCurrent)
	if err != nil {
		return err
	}

	reply := renderReport(rep)
	reply.Text = textScheduledHeader + "\n\n" + reply.Text
	if err := s.telegramClient.SendReply(ctx, u.UserID, reply); err != nil {
		return fmt.Errorf("failed to send scheduled report: %w", err)
	}
	return nil
}
