package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"weather_notification_bot/internal/domain/chat"
	"weather_notification_bot/internal/domain/forecast"
	"weather_notification_bot/internal/domain/preference"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// fakePrefs mirrors the database repository's semantics in memory.
type fakePrefs struct {
	mu      sync.Mutex
	prefs   map[int64]*preference.Preference
	lookups map[int64][]string
	err     error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{prefs: map[int64]*preference.Preference{}, lookups: map[int64][]string{}}
}

func (f *fakePrefs) Get(_ context.Context, userID int64) (*preference.Preference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.prefs[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return &preference.Preference{UserID: userID}, nil
}

func (f *fakePrefs) SetEnabled(_ context.Context, userID int64, enabled bool) (*preference.Preference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.prefs[userID]
	if !ok {
		p = &preference.Preference{UserID: userID}
		f.prefs[userID] = p
	}
	if enabled && !p.Hour.Valid {
		return nil, errHourNotSet
	}
	p.Enabled = enabled
	cp := *p
	return &cp, nil
}

func (f *fakePrefs) SetHourAndEnable(_ context.Context, userID int64, hour int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if len(f.lookups[userID]) == 0 {
		return false, nil
	}
	f.prefs[userID] = &preference.Preference{UserID: userID, Enabled: true, Hour: sql.NullInt16{Int16: int16(hour), Valid: true}}
	return true, nil
}

func (f *fakePrefs) ListDue(_ context.Context, hour int) ([]preference.DueUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var due []preference.DueUser
	for id, p := range f.prefs {
		if p.Enabled && p.Hour.Valid && int(p.Hour.Int16) == hour && len(f.lookups[id]) > 0 {
			hist := f.lookups[id]
			due = append(due, preference.DueUser{UserID: id, Location: hist[len(hist)-1]})
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].UserID < due[j].UserID })
	return due, nil
}

func (f *fakePrefs) RecordLookup(_ context.Context, rec *preference.LookupRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups[rec.UserID] = append(f.lookups[rec.UserID], rec.Location)
	return nil
}

func (f *fakePrefs) HasLookup(_ context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups[userID]) > 0, nil
}

func (f *fakePrefs) CountEnabled(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prefs {
		if p.Enabled {
			n++
		}
	}
	return n, nil
}

var errHourNotSet = errors.New("hour not set")

type reportCall struct {
	UserID   int64
	Location string
	Kind     forecast.Kind
}

// fakeReports is a ReportSource that fails for configured locations.
type fakeReports struct {
	mu    sync.Mutex
	calls []reportCall
	fail  map[string]bool
}

func newFakeReports() *fakeReports {
	return &fakeReports{fail: map[string]bool{}}
}

func (f *fakeReports) GetReport(_ context.Context, userID int64, loc string, kind forecast.Kind) (*forecast.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, reportCall{UserID: userID, Location: loc, Kind: kind})
	if f.fail[loc] {
		return nil, &forecast.Error{Reason: forecast.ReasonUnavailable, Location: loc, Kind: kind, Err: forecast.ErrProviderUnavailable}
	}
	return &forecast.Report{
		Kind:        kind,
		Location:    loc,
		Current:     forecast.Conditions{Text: "Sunny", TempC: 20},
		GeneratedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeReports) Calls() []reportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reportCall(nil), f.calls...)
}

// mockClient is a testify mock of the outbound telegram client.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) SendReply(ctx context.Context, recipientChatID int64, reply chat.Reply) error {
	args := m.Called(ctx, recipientChatID, reply)
	return args.Error(0)
}
