// internal/domain/preference/preference.go
package preference

import (
	"database/sql"
	"time"
)

// Preference is a user's notification setting.
// Corresponds to the 'notification_preferences' table.
type Preference struct {
	UserID    int64
	Enabled   bool
	Hour      sql.NullInt16 // 0-23 local hour; never NULL while Enabled
	UpdatedAt time.Time
}

// LookupRecord is one successful weather lookup.
// Corresponds to the append-only 'weather_lookups' table.
type LookupRecord struct {
	ID          int64
	UserID      int64
	Location    string
	Temperature float64
	Description string
	RequestedAt time.Time
}

// DueUser is a user whose notification is due, paired with their last looked-up location.
type DueUser struct {
	UserID   int64
	Location string
}
