package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdateLocation(ctx context.Context, id uuid.UUID, lat, lon float64) error
	SetOnboardingCompleted(ctx context.Context, id uuid.UUID) error
	SetDeviceToken(ctx context.Context, id uuid.UUID, token *string) error
	SetNotificationPrefs(ctx context.Context, id uuid.UUID, newMessages, newMatches, eventUpdates, friendRequests bool) error

	// ListDiscoverable returns onboarded profiles other than the requester
	// that the requester has not yet swiped on, in a deterministic order.
	// Relationship and geo filtering happen in the discovery usecase.
	ListDiscoverable(ctx context.Context, requesterID uuid.UUID, limit int) ([]*domain.Profile, error)
}
