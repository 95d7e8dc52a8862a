package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type SwipeRepository interface {
	// Create inserts the swipe, returning domain.ErrAlreadySwiped when a row
	// for the (swiper, swiped) pair already exists. The existing direction is
	// never overwritten.
	Create(ctx context.Context, swipe *domain.Swipe) error

	GetByUsers(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error)

	// GetReverseLike returns the like (right/up) swipe from swipedID back to
	// swiperID, or domain.ErrMatchNotFound when none exists.
	GetReverseLike(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error)

	// ListLikesReceived returns like swipes toward userID that userID has not
	// answered yet, newest first.
	ListLikesReceived(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Swipe, error)
}
