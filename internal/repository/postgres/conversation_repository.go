package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetOrCreateDirect(ctx context.Context, t domain.ConversationType, userA, userB uuid.UUID) (*domain.Conversation, bool, error) {
	pairKey := domain.DirectPairKey(t, userA, userB)
	newID := uuid.New()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	// The no-op DO UPDATE makes RETURNING yield the surviving row whether we
	// inserted it or lost the race, so both callers converge on one id.
	var conv domain.Conversation
	query := `
		INSERT INTO conversations (id, type, direct_pair_key)
		VALUES ($1, $2, $3)
		ON CONFLICT (direct_pair_key) DO UPDATE SET direct_pair_key = EXCLUDED.direct_pair_key
		RETURNING id, type, direct_pair_key, created_at
	`
	if err := tx.GetContext(ctx, &conv, query, newID, t, pairKey); err != nil {
		return nil, false, fmt.Errorf("resolve conversation: %w", err)
	}
	created := conv.ID == newID

	participantsQuery := `
		INSERT INTO conversation_participants (conversation_id, profile_id)
		VALUES ($1, $2), ($1, $3)
		ON CONFLICT (conversation_id, profile_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, participantsQuery, conv.ID, userA, userB); err != nil {
		return nil, false, fmt.Errorf("attach participants: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &conv, created, nil
}

func (r *conversationRepository) CreateActivity(ctx context.Context, participantIDs []uuid.UUID) (*domain.Conversation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var conv domain.Conversation
	query := `
		INSERT INTO conversations (id, type)
		VALUES ($1, $2)
		RETURNING id, type, direct_pair_key, created_at
	`
	if err := tx.GetContext(ctx, &conv, query, uuid.New(), domain.ConversationActivity); err != nil {
		return nil, err
	}

	participantQuery := `
		INSERT INTO conversation_participants (conversation_id, profile_id)
		VALUES ($1, $2)
		ON CONFLICT (conversation_id, profile_id) DO NOTHING
	`
	for _, id := range participantIDs {
		if _, err := tx.ExecContext(ctx, participantQuery, conv.ID, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE id = $1`
	err := r.db.GetContext(ctx, &conv, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	query := `
		SELECT c.* FROM conversations c
		JOIN conversation_participants p ON p.conversation_id = c.id
		WHERE p.profile_id = $1 AND p.hidden_at IS NULL AND p.left_at IS NULL
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &convs, query, profileID, limit, offset)
	return convs, err
}

func (r *conversationRepository) GetParticipant(ctx context.Context, conversationID, profileID uuid.UUID) (*domain.Participant, error) {
	var p domain.Participant
	query := `SELECT * FROM conversation_participants WHERE conversation_id = $1 AND profile_id = $2`
	err := r.db.GetContext(ctx, &p, query, conversationID, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotParticipant
		}
		return nil, err
	}
	return &p, nil
}

func (r *conversationRepository) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	query := `SELECT * FROM conversation_participants WHERE conversation_id = $1 ORDER BY joined_at`
	err := r.db.SelectContext(ctx, &participants, query, conversationID)
	return participants, err
}

func (r *conversationRepository) SetLastRead(ctx context.Context, conversationID, profileID uuid.UUID) error {
	query := `
		UPDATE conversation_participants
		SET last_read_at = CURRENT_TIMESTAMP
		WHERE conversation_id = $1 AND profile_id = $2
	`
	return r.execExpectingParticipant(ctx, query, conversationID, profileID)
}

func (r *conversationRepository) SetMuted(ctx context.Context, conversationID, profileID uuid.UUID, muted bool) error {
	query := `
		UPDATE conversation_participants
		SET muted = $3
		WHERE conversation_id = $1 AND profile_id = $2
	`
	return r.execExpectingParticipant(ctx, query, conversationID, profileID, muted)
}

func (r *conversationRepository) SetHidden(ctx context.Context, conversationID, profileID uuid.UUID, hidden bool) error {
	query := `
		UPDATE conversation_participants
		SET hidden_at = CASE WHEN $3 THEN CURRENT_TIMESTAMP ELSE NULL END
		WHERE conversation_id = $1 AND profile_id = $2
	`
	return r.execExpectingParticipant(ctx, query, conversationID, profileID, hidden)
}

func (r *conversationRepository) SetLeft(ctx context.Context, conversationID, profileID uuid.UUID) error {
	query := `
		UPDATE conversation_participants
		SET left_at = CURRENT_TIMESTAMP
		WHERE conversation_id = $1 AND profile_id = $2
	`
	return r.execExpectingParticipant(ctx, query, conversationID, profileID)
}

func (r *conversationRepository) execExpectingParticipant(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotParticipant
	}
	return nil
}
