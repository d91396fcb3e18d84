// internal/domain/preference/repository.go
package preference

import "context"

// Repository defines operations for notification preferences and lookup history.
type Repository interface {
	// Get returns the stored preference, or a disabled one with no hour if absent.
	Get(ctx context.Context, userID int64) (*Preference, error)
	// SetEnabled toggles Enabled in place, preserving Hour.
	SetEnabled(ctx context.Context, userID int64, enabled bool) (*Preference, error)
	// SetHourAndEnable stores hour and forces Enabled. It returns false when the
	// user has never looked up weather.
	SetHourAndEnable(ctx context.Context, userID int64, hour int) (bool, error)
	// ListDue returns enabled users whose hour equals hour, with their last looked-up location.
	ListDue(ctx context.Context, hour int) ([]DueUser, error)

	RecordLookup(ctx context.Context, rec *LookupRecord) error
	HasLookup(ctx context.Context, userID int64) (bool, error)
}
