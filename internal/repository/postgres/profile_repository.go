package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, display_name, birthdate, bio, looking_for, friends_only,
			gender, gender_preference, location_lat, location_lon,
			pref_min_age, pref_max_age, pref_max_distance_miles,
			onboarding_completed, device_token,
			notify_new_messages, notify_new_matches, notify_event_updates, notify_friend_requests
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.DisplayName, profile.Birthdate, profile.Bio,
		profile.LookingFor, profile.FriendsOnly, profile.Gender, profile.GenderPreference,
		profile.LocationLat, profile.LocationLon,
		profile.PrefMinAge, profile.PrefMaxAge, profile.PrefMaxDistanceMiles,
		profile.OnboardingCompleted, profile.DeviceToken,
		profile.NotifyNewMessages, profile.NotifyNewMatches,
		profile.NotifyEventUpdates, profile.NotifyFriendRequests,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, birthdate = $2, bio = $3, looking_for = $4,
		    friends_only = $5, gender = $6, gender_preference = $7,
		    pref_min_age = $8, pref_max_age = $9, pref_max_distance_miles = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Birthdate, profile.Bio, profile.LookingFor,
		profile.FriendsOnly, profile.Gender, profile.GenderPreference,
		profile.PrefMinAge, profile.PrefMaxAge, profile.PrefMaxDistanceMiles,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	query := `
		UPDATE profiles
		SET location_lat = $1, location_lon = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	return r.execExpectingRow(ctx, query, lat, lon, id)
}

func (r *profileRepository) SetOnboardingCompleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE profiles
		SET onboarding_completed = true, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.execExpectingRow(ctx, query, id)
}

func (r *profileRepository) SetDeviceToken(ctx context.Context, id uuid.UUID, token *string) error {
	query := `
		UPDATE profiles
		SET device_token = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	return r.execExpectingRow(ctx, query, token, id)
}

func (r *profileRepository) SetNotificationPrefs(ctx context.Context, id uuid.UUID, newMessages, newMatches, eventUpdates, friendRequests bool) error {
	query := `
		UPDATE profiles
		SET notify_new_messages = $1, notify_new_matches = $2,
		    notify_event_updates = $3, notify_friend_requests = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
	`
	return r.execExpectingRow(ctx, query, newMessages, newMatches, eventUpdates, friendRequests, id)
}

func (r *profileRepository) ListDiscoverable(ctx context.Context, requesterID uuid.UUID, limit int) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `
		SELECT p.* FROM profiles p
		WHERE p.id != $1
		  AND p.onboarding_completed = true
		  AND NOT EXISTS (
		      SELECT 1 FROM swipes s
		      WHERE s.swiper_id = $1 AND s.swiped_id = p.id
		  )
		ORDER BY p.id
		LIMIT $2
	`
	err := r.db.SelectContext(ctx, &profiles, query, requesterID, limit)
	return profiles, err
}

func (r *profileRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
