package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type MatchRepository interface {
	// CreateIfAbsent inserts the match on its canonical pair, reporting
	// whether this call created the row. A concurrent or repeated attempt for
	// the same pair observes created == false, which is what keeps the
	// match-formed transition (and its notifications) exactly-once.
	CreateIfAbsent(ctx context.Context, match *domain.Match) (created bool, err error)

	GetByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Match, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Match, error)
	SetOpeners(ctx context.Context, id uuid.UUID, openers []string) error
}
