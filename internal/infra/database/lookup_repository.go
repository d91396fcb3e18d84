package database

import (
	"context"
	"fmt"
	"time"

	"weather_notification_bot/internal/domain/preference"
)

// RecordLookup appends a lookup to the history log.
func (r *PreferenceRepository) RecordLookup(ctx context.Context, rec *preference.LookupRecord) error {
	if rec.RequestedAt.IsZero() {
		rec.RequestedAt = time.Now().UTC()
	}
	query := `INSERT INTO weather_lookups (user_id, location, temperature, description, requested_at)
               VALUES (?, ?, ?, ?, ?)
               RETURNING id`
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query),
		rec.UserID, rec.Location, rec.Temperature, rec.Description, rec.RequestedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("error recording weather lookup: %w", err)
	}
	return nil
}

// HasLookup reports whether the user has at least one recorded lookup.
func (r *PreferenceRepository) HasLookup(ctx context.Context, userID int64) (bool, error) {
	return r.hasLookup(ctx, r.db, userID)
}

func (r *PreferenceRepository) hasLookup(ctx context.Context, q queryRower, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM weather_lookups WHERE user_id = ?)`
	if err := q.QueryRowContext(ctx, r.dialect.rebind(query), userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking lookup history: %w", err)
	}
	return exists, nil
}
