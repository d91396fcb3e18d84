package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weather_notification_bot/internal/domain/preference"
)

// Custom errors specific to the preference repository
var ErrHourNotSet = fmt.Errorf("notification hour is not set")
var ErrInvalidHour = fmt.Errorf("notification hour must be between 0 and 23")

// PreferenceRepository stores notification preferences and lookup history.
type PreferenceRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewPreferenceRepository(db *sql.DB, dialect Dialect) *PreferenceRepository {
	return &PreferenceRepository{db: db, dialect: dialect}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *PreferenceRepository) getPreference(ctx context.Context, q queryRower, userID int64, lock bool) (*preference.Preference, error) {
	query := `SELECT user_id, enabled, hour, updated_at FROM notification_preferences WHERE user_id = ?`
	if lock {
		query += r.dialect.forUpdate()
	}
	p := &preference.Preference{}
	err := q.QueryRowContext(ctx, r.dialect.rebind(query), userID).Scan(&p.UserID, &p.Enabled, &p.Hour, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &preference.Preference{UserID: userID}, nil
		}
		return nil, fmt.Errorf("error getting notification preference: %w", err)
	}
	return p, nil
}

// Get returns the user's preference, defaulting to disabled with no hour.
func (r *PreferenceRepository) Get(ctx context.Context, userID int64) (*preference.Preference, error) {
	return r.getPreference(ctx, r.db, userID, false)
}

// SetEnabled toggles the preference in place. Enabling a preference that never had
// an hour fails with ErrHourNotSet.
func (r *PreferenceRepository) SetEnabled(ctx context.Context, userID int64, enabled bool) (*preference.Preference, error) {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for set enabled: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	p, err := r.getPreference(ctx, txn, userID, true)
	if err != nil {
		return nil, err
	}
	if enabled && !p.Hour.Valid {
		return nil, ErrHourNotSet
	}

	p.Enabled = enabled
	p.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO notification_preferences (user_id, enabled, hour, updated_at)
               VALUES (?, ?, ?, ?)
               ON CONFLICT (user_id) DO UPDATE SET enabled = excluded.enabled, updated_at = excluded.updated_at`
	if _, err := txn.ExecContext(ctx, r.dialect.rebind(query), userID, p.Enabled, p.Hour, p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("error updating notification preference: %w", err)
	}

	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit set enabled: %w", err)
	}
	return p, nil
}

// SetHourAndEnable stores hour and enables notifications. It reports false, without
// writing anything, when the user has no lookup history.
func (r *PreferenceRepository) SetHourAndEnable(ctx context.Context, userID int64, hour int) (bool, error) {
	if hour < 0 || hour > 23 {
		return false, ErrInvalidHour
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction for set hour: %w", err)
	}
	defer txn.Rollback()

	hasLookup, err := r.hasLookup(ctx, txn, userID)
	if err != nil {
		return false, err
	}
	if !hasLookup {
		return false, nil
	}

	query := `INSERT INTO notification_preferences (user_id, enabled, hour, updated_at)
               VALUES (?, ?, ?, ?)
               ON CONFLICT (user_id) DO UPDATE SET enabled = excluded.enabled, hour = excluded.hour, updated_at = excluded.updated_at`
	if _, err := txn.ExecContext(ctx, r.dialect.rebind(query), userID, true, hour, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("error setting notification hour: %w", err)
	}

	if err := txn.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit set hour: %w", err)
	}
	return true, nil
}

// ListDue reads enabled users at hour together with their most recent lookup location
// in a single statement, so the enabled/hour pair is never observed half-updated.
func (r *PreferenceRepository) ListDue(ctx context.Context, hour int) ([]preference.DueUser, error) {
	query := `SELECT p.user_id, l.location
               FROM notification_preferences p
               JOIN weather_lookups l ON l.id = (SELECT MAX(id) FROM weather_lookups WHERE user_id = p.user_id)
               WHERE p.enabled = ? AND p.hour = ?
               ORDER BY p.user_id`
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), true, hour)
	if err != nil {
		return nil, fmt.Errorf("error querying due users: %w", err)
	}
	defer rows.Close()

	due := make([]preference.DueUser, 0)
	for rows.Next() {
		var u preference.DueUser
		if err := rows.Scan(&u.UserID, &u.Location); err != nil {
			return nil, fmt.Errorf("error scanning due user: %w", err)
		}
		due = append(due, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due users: %w", err)
	}
	return due, nil
}

// CountEnabled returns the number of users with notifications on.
func (r *PreferenceRepository) CountEnabled(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM notification_preferences WHERE enabled = ?`
	if err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), true).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting enabled preferences: %w", err)
	}
	return n, nil
}
