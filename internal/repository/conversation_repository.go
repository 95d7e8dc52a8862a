package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type ConversationRepository interface {
	// GetOrCreateDirect resolves the unique direct conversation for
	// (type, pair), creating it with both participants when absent. The
	// check-then-create race is settled by the unique direct_pair_key index;
	// concurrent callers converge on one row. created reports whether this
	// call inserted the conversation.
	GetOrCreateDirect(ctx context.Context, t domain.ConversationType, userA, userB uuid.UUID) (conv *domain.Conversation, created bool, err error)

	// CreateActivity creates a typed activity group conversation with the
	// given participants. Activity threads are not pair-deduplicated.
	CreateActivity(ctx context.Context, participantIDs []uuid.UUID) (*domain.Conversation, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListForUser(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*domain.Conversation, error)

	GetParticipant(ctx context.Context, conversationID, profileID uuid.UUID) (*domain.Participant, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.Participant, error)

	SetLastRead(ctx context.Context, conversationID, profileID uuid.UUID) error
	SetMuted(ctx context.Context, conversationID, profileID uuid.UUID, muted bool) error
	SetHidden(ctx context.Context, conversationID, profileID uuid.UUID, hidden bool) error
	SetLeft(ctx context.Context, conversationID, profileID uuid.UUID) error
}
