package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)

	// ListByConversation returns non-deleted messages newest first.
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*domain.Message, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
}
