package domain

import (
	"time"

	"github.com/google/uuid"
)

// LookingFor is the relationship category a profile is open to.
type LookingFor string

const (
	LookingForDating  LookingFor = "dating"
	LookingForFriends LookingFor = "friends"
	LookingForBoth    LookingFor = "both"
)

// DiscoveryMode is the relationship category a discovery request targets.
type DiscoveryMode string

const (
	ModeDating  DiscoveryMode = "dating"
	ModeFriends DiscoveryMode = "friends"
	ModeAny     DiscoveryMode = "any"
)

// Admits reports whether a candidate with the given lookingFor value is
// compatible with this discovery mode.
func (m DiscoveryMode) Admits(lf LookingFor) bool {
	switch m {
	case ModeDating:
		return lf == LookingForDating || lf == LookingForBoth
	case ModeFriends:
		return lf == LookingForFriends || lf == LookingForBoth
	case ModeAny:
		return true
	}
	return false
}

// Gender preference values stored on a profile.
const (
	PrefMen      = "men"
	PrefWomen    = "women"
	PrefEveryone = "everyone"
)

type Profile struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	DisplayName          string     `json:"display_name" db:"display_name"`
	Birthdate            *time.Time `json:"birthdate" db:"birthdate"`
	Bio                  *string    `json:"bio" db:"bio"`
	LookingFor           LookingFor `json:"looking_for" db:"looking_for"`
	FriendsOnly          bool       `json:"friends_only" db:"friends_only"`
	Gender               *string    `json:"gender" db:"gender"`
	GenderPreference     *string    `json:"gender_preference" db:"gender_preference"`
	LocationLat          *float64   `json:"location_lat" db:"location_lat"`
	LocationLon          *float64   `json:"location_lon" db:"location_lon"`
	PrefMinAge           int        `json:"pref_min_age" db:"pref_min_age"`
	PrefMaxAge           int        `json:"pref_max_age" db:"pref_max_age"`
	PrefMaxDistanceMiles int        `json:"pref_max_distance_miles" db:"pref_max_distance_miles"`
	OnboardingCompleted  bool       `json:"onboarding_completed" db:"onboarding_completed"`
	DeviceToken          *string    `json:"-" db:"device_token"`
	NotifyNewMessages    bool       `json:"notify_new_messages" db:"notify_new_messages"`
	NotifyNewMatches     bool       `json:"notify_new_matches" db:"notify_new_matches"`
	NotifyEventUpdates   bool       `json:"notify_event_updates" db:"notify_event_updates"`
	NotifyFriendRequests bool       `json:"notify_friend_requests" db:"notify_friend_requests"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// HasLocation reports whether the profile has a pinned current location.
func (p *Profile) HasLocation() bool {
	return p.LocationLat != nil && p.LocationLon != nil
}

// Age returns the profile's age in whole years at the given instant,
// or nil when no birthdate is set.
func (p *Profile) Age(now time.Time) *int {
	if p.Birthdate == nil {
		return nil
	}
	b := *p.Birthdate
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return &age
}

// ValidCoordinates reports whether lat/lon are within the valid ranges.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
