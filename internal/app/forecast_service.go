// internal/app/forecast_service.go
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weather_notification_bot/internal/domain/forecast"
	"weather_notification_bot/internal/domain/preference"
	"weather_notification_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

const lookupRecordTimeout = 10 * time.Second

// ReportSource produces renderable forecast reports.
type ReportSource interface {
	GetReport(ctx context.Context, userID int64, location string, kind forecast.Kind) (*forecast.Report, error)
}

// LookupRecorder persists weather lookup history.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, rec *preference.LookupRecord) error
}

// ForecastService calls the weather provider and builds reports.
type ForecastService struct {
	provider forecast.Provider
	history  LookupRecorder
	loc      *time.Location
	logger   *logrus.Entry
	metrics  *metrics.Recorder
	now      func() time.Time

	pending sync.WaitGroup
}

func NewForecastService(
	provider forecast.Provider,
	history LookupRecorder,
	loc *time.Location,
	logger *logrus.Entry,
	recorder *metrics.Recorder,
) *ForecastService {
	return &ForecastService{
		provider: provider,
		history:  history,
		loc:      loc,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// GetReport fetches data for kind and returns a report, or a *forecast.Error with
// ReasonUnavailable. A current report also requests the weekly forecast to obtain
// sunrise/sunset; failure of that second call only drops the astro section.
// Successful lookups are recorded in the background.
func (s *ForecastService) GetReport(ctx context.Context, userID int64, location string, kind forecast.Kind) (*forecast.Report, error) {
	logCtx := s.logger.WithFields(logrus.Fields{"user_id": userID, "location": location, "kind": kind})

	if kind.Days() == 0 && kind != forecast.KindCurrent {
		s.metrics.ForecastRequest(string(kind), "invalid")
		return nil, &forecast.Error{Reason: forecast.ReasonUnavailable, Location: location, Kind: kind, Err: fmt.Errorf("unknown forecast kind")}
	}

	data, err := s.provider.FetchForecast(ctx, location, kind)
	if err != nil {
		logCtx.WithError(err).Warn("Weather provider request failed")
		s.metrics.ForecastRequest(string(kind), "unavailable")
		return nil, &forecast.Error{Reason: forecast.ReasonUnavailable, Location: location, Kind: kind, Err: err}
	}

	report := &forecast.Report{
		Kind:        kind,
		Location:    location,
		Current:     data.Current,
		Days:        data.Days,
		GeneratedAt: s.now().In(s.loc),
	}

	if kind == forecast.KindCurrent {
		weekly, err := s.provider.FetchForecast(ctx, location, forecast.KindWeekly)
		switch {
		case err != nil:
			logCtx.WithError(err).Info("Astro data unavailable, omitting sunrise/sunset")
		case len(weekly.Days) == 0 || weekly.Days[0].Astro == nil:
			logCtx.Debug("Provider returned no astro data")
		default:
			report.Astro = weekly.Days[0].Astro
		}
	}

	s.metrics.ForecastRequest(string(kind), "ok")
	s.recordLookupAsync(&preference.LookupRecord{
		UserID:      userID,
		Location:    location,
		Temperature: data.Current.TempC,
		Description: data.Current.Text,
		RequestedAt: report.GeneratedAt.UTC(),
	}, logCtx)

	return report, nil
}

// recordLookupAsync writes the history row without blocking the reply path.
func (s *ForecastService) recordLookupAsync(rec *preference.LookupRecord, logCtx *logrus.Entry) {
	if s.history == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), lookupRecordTimeout)
		defer cancel()
		if err := s.history.RecordLookup(ctx, rec); err != nil {
			logCtx.WithError(err).Error("Failed to record weather lookup")
		}
	}()
}

// Wait blocks until background lookup writes have finished.
func (s *ForecastService) Wait() {
	s.pending.Wait()
}
