package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type TravelStopRepository interface {
	Create(ctx context.Context, stop *domain.TravelStop) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TravelStop, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.TravelStop, error)

	// ListByProfiles fetches stops for a batch of profiles in one round trip,
	// keyed by owner, for discovery's cross-product distance checks.
	ListByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]*domain.TravelStop, error)
}
