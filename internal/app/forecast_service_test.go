package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"weather_notification_bot/internal/domain/forecast"
	"weather_notification_bot/internal/domain/preference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu    sync.Mutex
	calls []forecast.Kind
	fail  map[forecast.Kind]error
}

func (p *stubProvider) FetchForecast(_ context.Context, loc string, kind forecast.Kind) (*forecast.Data, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, kind)
	if err := p.fail[kind]; err != nil {
		return nil, err
	}
	data := &forecast.Data{
		Location: loc,
		Current:  forecast.Conditions{Text: "Partly cloudy", TempC: 18.5},
	}
	for i := 0; i < kind.Days(); i++ {
		data.Days = append(data.Days, forecast.Day{
			Date:  time.Date(2026, 10, 18+i, 0, 0, 0, 0, time.UTC),
			Astro: &forecast.Astro{Sunrise: "06:41 AM", Sunset: "05:52 PM"},
		})
	}
	return data, nil
}

type recordingHistory struct {
	mu      sync.Mutex
	records []preference.LookupRecord
	err     error
}

func (h *recordingHistory) RecordLookup(_ context.Context, rec *preference.LookupRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, *rec)
	return nil
}

func newTestForecastService(p forecast.Provider, h LookupRecorder) *ForecastService {
	loc, _ := time.LoadLocation("Asia/Tashkent")
	if loc == nil {
		loc = time.UTC
	}
	s := NewForecastService(p, h, loc, quietLogger(), nil)
	s.now = func() time.Time { return time.Date(2026, 10, 18, 4, 30, 0, 0, time.UTC) }
	return s
}

func TestForecastService_CurrentIncludesAstro(t *testing.T) {
	p := &stubProvider{}
	h := &recordingHistory{}
	s := newTestForecastService(p, h)

	rep, err := s.GetReport(context.Background(), 1, "Chilonzor", forecast.KindCurrent)
	require.NoError(t, err)
	s.Wait()

	assert.Equal(t, []forecast.Kind{forecast.KindCurrent, forecast.KindWeekly}, p.calls)
	require.NotNil(t, rep.Astro)
	assert.Equal(t, "06:41 AM", rep.Astro.Sunrise)
	assert.Equal(t, 18.5, rep.Current.TempC)

	require.Len(t, h.records, 1)
	assert.Equal(t, int64(1), h.records[0].UserID)
	assert.Equal(t, "Chilonzor", h.records[0].Location)
	assert.Equal(t, "Partly cloudy", h.records[0].Description)
}

func TestForecastService_AstroFailureOnlyDropsAstro(t *testing.T) {
	p := &stubProvider{fail: map[forecast.Kind]error{forecast.KindWeekly: forecast.ErrProviderUnavailable}}
	s := newTestForecastService(p, &recordingHistory{})

	rep, err := s.GetReport(context.Background(), 1, "Chilonzor", forecast.KindCurrent)
	require.NoError(t, err)
	s.Wait()

	assert.Nil(t, rep.Astro)
	assert.Equal(t, "Partly cloudy", rep.Current.Text)
}

func TestForecastService_HourlyAndWeeklyMakeOneCall(t *testing.T) {
	for _, kind := range []forecast.Kind{forecast.KindHourly, forecast.KindWeekly} {
		p := &stubProvider{}
		s := newTestForecastService(p, nil)

		rep, err := s.GetReport(context.Background(), 1, "Sergeli", kind)
		require.NoError(t, err)
		assert.Equal(t, []forecast.Kind{kind}, p.calls)
		assert.Len(t, rep.Days, kind.Days())
		assert.Nil(t, rep.Astro)
	}
}

func TestForecastService_ProviderFailureIsUnavailable(t *testing.T) {
	p := &stubProvider{fail: map[forecast.Kind]error{forecast.KindCurrent: forecast.ErrProviderUnavailable}}
	h := &recordingHistory{}
	s := newTestForecastService(p, h)

	_, err := s.GetReport(context.Background(), 1, "Chilonzor", forecast.KindCurrent)
	s.Wait()

	require.Error(t, err)
	assert.True(t, forecast.IsUnavailable(err))
	var fe *forecast.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Chilonzor", fe.Location)
	assert.ErrorIs(t, err, forecast.ErrProviderUnavailable)
	assert.Empty(t, h.records)
}

func TestForecastService_RecordFailureDoesNotFailReport(t *testing.T) {
	s := newTestForecastService(&stubProvider{}, &recordingHistory{err: errors.New("disk full")})

	rep, err := s.GetReport(context.Background(), 1, "Chilonzor", forecast.KindHourly)
	s.Wait()

	require.NoError(t, err)
	assert.NotNil(t, rep)
}

func TestForecastService_GeneratedAtInConfiguredZone(t *testing.T) {
	s := newTestForecastService(&stubProvider{}, nil)

	rep, err := s.GetReport(context.Background(), 1, "Chilonzor", forecast.KindHourly)
	require.NoError(t, err)
	assert.Equal(t, s.loc, rep.GeneratedAt.Location())
}
