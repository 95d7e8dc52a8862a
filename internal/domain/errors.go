package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrTravelStopNotFound   = errors.New("travel stop not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")

	// ErrAlreadySwiped is returned on a duplicate (swiper, swiped) pair. The
	// original direction is never overwritten; there is no unswipe.
	ErrAlreadySwiped = errors.New("already swiped on this profile")

	ErrCannotSwipeSelf         = errors.New("cannot swipe on yourself")
	ErrSameParticipant         = errors.New("conversation requires two distinct participants")
	ErrInvalidDirection        = errors.New("invalid swipe direction")
	ErrInvalidDiscoveryMode    = errors.New("invalid discovery mode")
	ErrInvalidConversationType = errors.New("invalid conversation type")
	ErrInvalidCoordinates      = errors.New("coordinates out of range")
	ErrInvalidStopDates        = errors.New("travel stop start date must not be after end date")
	ErrInvalidDistance         = errors.New("max distance must be between 1 and 500 miles")
	ErrInvalidAgeRange         = errors.New("minimum preferred age must not exceed maximum")

	ErrNotParticipant = errors.New("not a participant of this conversation")
	ErrNotOwner       = errors.New("resource is owned by another profile")
)
