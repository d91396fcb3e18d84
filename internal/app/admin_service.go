package app

import (
	"context"
	"fmt"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")
var ErrInvalidHour = fmt.Errorf("hour must be between 0 and 23")

// PreferenceCounter reports how many users have notifications enabled.
type PreferenceCounter interface {
	CountEnabled(ctx context.Context) (int, error)
}

// SessionCounter reports how many users have an in-memory session.
type SessionCounter interface {
	Len() int
}

// BotStats is the admin overview.
type BotStats struct {
	Sessions             int
	NotificationsEnabled int
}

type AdminService struct {
	prefs           PreferenceCounter
	sessions        SessionCounter
	notifications   NotificationService
	adminTelegramID int64
}

func NewAdminService(prefs PreferenceCounter, sessions SessionCounter, notifications NotificationService, adminID int64) *AdminService {
	return &AdminService{
		prefs:           prefs,
		sessions:        sessions,
		notifications:   notifications,
		adminTelegramID: adminID,
	}
}

func (s *AdminService) authorize(performingAdminID int64) error {
	if s.adminTelegramID == 0 || performingAdminID != s.adminTelegramID {
		return ErrAdminNotAuthorized
	}
	return nil
}

// Stats returns session and preference counts.
func (s *AdminService) Stats(ctx context.Context, performingAdminID int64) (*BotStats, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return nil, err
	}

	enabled, err := s.prefs.CountEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count enabled notifications: %w", err)
	}
	return &BotStats{Sessions: s.sessions.Len(), NotificationsEnabled: enabled}, nil
}

// DeliverNow runs the scheduled delivery for hour immediately.
func (s *AdminService) DeliverNow(ctx context.Context, performingAdminID int64, hour int) (DeliveryStats, error) {
	if err := s.authorize(performingAdminID); err != nil {
		return DeliveryStats{}, err
	}
	if hour < 0 || hour > 23 {
		return DeliveryStats{}, ErrInvalidHour
	}
	return s.notifications.DeliverDue(ctx, hour)
}
