// Package profile manages profile data and travel stops. Profiles stay out
// of discovery until onboarding completes.
package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/geo"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

type UseCase struct {
	profileRepo repository.ProfileRepository
	stopRepo    repository.TravelStopRepository
}

func NewUseCase(profileRepo repository.ProfileRepository, stopRepo repository.TravelStopRepository) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		stopRepo:    stopRepo,
	}
}

// CreateProfileRequest creates the initial profile record for a new account.
type CreateProfileRequest struct {
	DisplayName string     `json:"display_name" binding:"required,min=2,max=100"`
	Birthdate   *time.Time `json:"birthdate" binding:"omitempty"`
	Bio         *string    `json:"bio" binding:"omitempty,max=500"`
	LookingFor  string     `json:"looking_for" binding:"required,lookingfor"`
	Gender      *string    `json:"gender" binding:"omitempty,max=30"`
}

// UpdateProfileRequest applies a partial profile update; nil fields keep
// their current value.
type UpdateProfileRequest struct {
	DisplayName          *string    `json:"display_name" binding:"omitempty,min=2,max=100"`
	Birthdate            *time.Time `json:"birthdate" binding:"omitempty"`
	Bio                  *string    `json:"bio" binding:"omitempty,max=500"`
	LookingFor           *string    `json:"looking_for" binding:"omitempty,lookingfor"`
	FriendsOnly          *bool      `json:"friends_only"`
	Gender               *string    `json:"gender" binding:"omitempty,max=30"`
	GenderPreference     *string    `json:"gender_preference" binding:"omitempty,oneof=men women everyone"`
	PrefMinAge           *int       `json:"pref_min_age" binding:"omitempty,min=18,max=80"`
	PrefMaxAge           *int       `json:"pref_max_age" binding:"omitempty,min=18,max=80"`
	PrefMaxDistanceMiles *int       `json:"pref_max_distance_miles" binding:"omitempty,min=1,max=500"`
}

// CreateProfile registers the profile created alongside a new account.
// Onboarding remains incomplete, so the profile is not discoverable yet.
func (uc *UseCase) CreateProfile(ctx context.Context, id uuid.UUID, req *CreateProfileRequest) (*domain.Profile, error) {
	profile := &domain.Profile{
		ID:                   id,
		DisplayName:          req.DisplayName,
		Birthdate:            req.Birthdate,
		Bio:                  req.Bio,
		LookingFor:           domain.LookingFor(req.LookingFor),
		Gender:               req.Gender,
		PrefMinAge:           18,
		PrefMaxAge:           80,
		PrefMaxDistanceMiles: 50,
		NotifyNewMessages:    true,
		NotifyNewMatches:     true,
		NotifyEventUpdates:   true,
		NotifyFriendRequests: true,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns a profile by id. When viewerID is non-nil and both
// profiles have pinned locations, DistanceMiles is filled in.
func (uc *UseCase) GetProfile(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*ProfileView, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Profile: profile, Age: profile.Age(time.Now())}
	if viewerID != nil && *viewerID != id {
		viewer, err := uc.profileRepo.GetByID(ctx, *viewerID)
		if err == nil && viewer.HasLocation() && profile.HasLocation() {
			d := geo.DistanceMiles(*viewer.LocationLat, *viewer.LocationLon, *profile.LocationLat, *profile.LocationLon)
			view.DistanceMiles = &d
		}
	}
	return view, nil
}

// ProfileView is a profile plus viewer-relative derived fields.
type ProfileView struct {
	*domain.Profile
	Age           *int     `json:"age,omitempty"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// UpdateProfile applies a partial update to the caller's own profile.
func (uc *UseCase) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Birthdate != nil {
		profile.Birthdate = req.Birthdate
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.LookingFor != nil {
		profile.LookingFor = domain.LookingFor(*req.LookingFor)
	}
	if req.FriendsOnly != nil {
		profile.FriendsOnly = *req.FriendsOnly
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.GenderPreference != nil {
		profile.GenderPreference = req.GenderPreference
	}
	if req.PrefMinAge != nil {
		profile.PrefMinAge = *req.PrefMinAge
	}
	if req.PrefMaxAge != nil {
		profile.PrefMaxAge = *req.PrefMaxAge
	}
	if profile.PrefMinAge > profile.PrefMaxAge {
		return nil, domain.ErrInvalidAgeRange
	}
	if req.PrefMaxDistanceMiles != nil {
		profile.PrefMaxDistanceMiles = *req.PrefMaxDistanceMiles
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CompleteOnboarding marks the profile discoverable.
func (uc *UseCase) CompleteOnboarding(ctx context.Context, id uuid.UUID) error {
	return uc.profileRepo.SetOnboardingCompleted(ctx, id)
}

// UpdateLocation pins the caller's current coordinates.
func (uc *UseCase) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	if !domain.ValidCoordinates(lat, lon) {
		return domain.ErrInvalidCoordinates
	}
	return uc.profileRepo.UpdateLocation(ctx, id, lat, lon)
}

// RegisterDeviceToken stores (or clears, when token is nil) the push token.
func (uc *UseCase) RegisterDeviceToken(ctx context.Context, id uuid.UUID, token *string) error {
	return uc.profileRepo.SetDeviceToken(ctx, id, token)
}

// NotificationPrefsRequest toggles per-category push preferences.
type NotificationPrefsRequest struct {
	NewMessages    bool `json:"new_messages"`
	NewMatches     bool `json:"new_matches"`
	EventUpdates   bool `json:"event_updates"`
	FriendRequests bool `json:"friend_requests"`
}

func (uc *UseCase) UpdateNotificationPrefs(ctx context.Context, id uuid.UUID, req *NotificationPrefsRequest) error {
	return uc.profileRepo.SetNotificationPrefs(ctx, id, req.NewMessages, req.NewMatches, req.EventUpdates, req.FriendRequests)
}

// AddTravelStopRequest creates a waypoint on the caller's route.
type AddTravelStopRequest struct {
	LocationName string     `json:"location_name" binding:"required,min=1,max=200"`
	Lat          *float64   `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lon          *float64   `json:"lon" binding:"omitempty,min=-180,max=180"`
	StartDate    time.Time  `json:"start_date" binding:"required"`
	EndDate      *time.Time `json:"end_date"`
}

// AddTravelStop validates and stores a new stop for the owner.
func (uc *UseCase) AddTravelStop(ctx context.Context, ownerID uuid.UUID, req *AddTravelStopRequest) (*domain.TravelStop, error) {
	if req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, domain.ErrInvalidStopDates
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return nil, domain.ErrInvalidCoordinates
	}
	if req.Lat != nil && !domain.ValidCoordinates(*req.Lat, *req.Lon) {
		return nil, domain.ErrInvalidCoordinates
	}

	stop := &domain.TravelStop{
		ID:           uuid.New(),
		ProfileID:    ownerID,
		LocationName: req.LocationName,
		Lat:          req.Lat,
		Lon:          req.Lon,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	if err := uc.stopRepo.Create(ctx, stop); err != nil {
		return nil, err
	}
	return stop, nil
}

// ListTravelStops returns the caller's stops ordered by start date.
func (uc *UseCase) ListTravelStops(ctx context.Context, ownerID uuid.UUID) ([]*domain.TravelStop, error) {
	return uc.stopRepo.ListByProfile(ctx, ownerID)
}

// RemoveTravelStop deletes a stop. Owner only.
func (uc *UseCase) RemoveTravelStop(ctx context.Context, ownerID, stopID uuid.UUID) error {
	stop, err := uc.stopRepo.GetByID(ctx, stopID)
	if err != nil {
		return err
	}
	if stop.ProfileID != ownerID {
		return domain.ErrNotOwner
	}
	return uc.stopRepo.Delete(ctx, stopID)
}
