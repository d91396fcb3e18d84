package app

import (
	"context"
	"testing"

	"weather_notification_bot/internal/infra/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	hours []int
}

func (n *stubNotifier) DeliverDue(_ context.Context, hour int) (DeliveryStats, error) {
	n.hours = append(n.hours, hour)
	return DeliveryStats{Due: 2, Delivered: 2}, nil
}

func TestAdminService_Authorization(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewAdminService(newFakePrefs(), session.NewStore(), notifier, 100)

	_, err := svc.Stats(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)

	_, err = svc.DeliverNow(context.Background(), 5, 9)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
	assert.Empty(t, notifier.hours)
}

func TestAdminService_DisabledWithoutAdminID(t *testing.T) {
	svc := NewAdminService(newFakePrefs(), session.NewStore(), &stubNotifier{}, 0)

	_, err := svc.Stats(context.Background(), 0)
	assert.ErrorIs(t, err, ErrAdminNotAuthorized)
}

func TestAdminService_Stats(t *testing.T) {
	prefs := newFakePrefs()
	sessions := session.NewStore()
	sessions.SetLocation(1, "Chilonzor")
	sessions.SetLocation(2, "Sergeli")
	seedDue(t, prefs, 1, "Chilonzor", 8)

	svc := NewAdminService(prefs, sessions, &stubNotifier{}, 100)
	stats, err := svc.Stats(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, &BotStats{Sessions: 2, NotificationsEnabled: 1}, stats)
}

func TestAdminService_DeliverNow(t *testing.T) {
	notifier := &stubNotifier{}
	svc := NewAdminService(newFakePrefs(), session.NewStore(), notifier, 100)

	_, err := svc.DeliverNow(context.Background(), 100, 24)
	assert.ErrorIs(t, err, ErrInvalidHour)

	stats, err := svc.DeliverNow(context.Background(), 100, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Delivered)
	assert.Equal(t, []int{9}, notifier.hours)
}
