package domain

import (
	"time"

	"github.com/google/uuid"
)

// SwipeDirection is the direction of a swipe gesture. Right and up both
// express interest; left is a pass.
type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
	SwipeUp    SwipeDirection = "up"
)

// Valid reports whether d is a known direction.
func (d SwipeDirection) Valid() bool {
	return d == SwipeLeft || d == SwipeRight || d == SwipeUp
}

// IsLike reports whether the direction expresses interest.
func (d SwipeDirection) IsLike() bool {
	return d == SwipeRight || d == SwipeUp
}

// Swipe is a one-time directional preference from one profile toward
// another. A (swiper, swiped) pair is unique; directions are never
// overwritten.
type Swipe struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	SwiperID  uuid.UUID      `json:"swiper_id" db:"swiper_id"`
	SwipedID  uuid.UUID      `json:"swiped_id" db:"swiped_id"`
	Direction SwipeDirection `json:"direction" db:"direction"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
